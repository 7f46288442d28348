package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pycole/internal/report"
)

// envPrefix 是环境变量前缀，例如 PYCOLE_FORMAT=csv。
const envPrefix = "PYCOLE"

// scanOptions 存放分析命令的可配置参数。
// 取值优先级：命令行参数 > 环境变量 > 默认值。
type scanOptions struct {
	format string
	output string
}

// loadScanOptions 从 viper 读取最终生效的参数并校验。
func loadScanOptions(settings *viper.Viper) (scanOptions, error) {
	options := scanOptions{
		format: strings.ToLower(strings.TrimSpace(settings.GetString("format"))),
		output: strings.TrimSpace(settings.GetString("output")),
	}

	for _, allowed := range report.Formats() {
		if options.format == allowed {
			return options, nil
		}
	}
	return options, newUsageError(
		"invalid value for '--format' / '-f': '%s' is not one of %s",
		settings.GetString("format"),
		"'"+strings.Join(report.Formats(), "', '")+"'",
	)
}

// exactlyOnePath 校验位置参数个数，失败时返回 UsageError。
// 指定 --rules 时可以不给 PATH。
func exactlyOnePath(cmd *cobra.Command, args []string) error {
	showRules, err := cmd.Flags().GetBool(rulesFlag)
	if err != nil {
		return err
	}
	switch {
	case showRules && len(args) == 0:
		return nil
	case len(args) == 0:
		return newUsageError("missing argument 'PATH'")
	case len(args) > 1:
		return newUsageError("got unexpected extra argument (%s)", strings.Join(args[1:], " "))
	}
	return nil
}

// newScanCmd 创建分析命令。
// 示例：
//
//	pycole .
//	pycole ./project --format csv --output metrics.csv
//	pycole --rules
func newScanCmd(analyzer pathAnalyzer) (*cobra.Command, error) {
	settings := viper.New()
	settings.SetEnvPrefix(envPrefix)
	settings.AutomaticEnv()
	settings.SetDefault("format", report.FormatTextName)
	settings.SetDefault("output", "")

	scanCmd := &cobra.Command{
		Use:   "pycole PATH",
		Short: "统计 Python 代码的行数、语句数与测试代码行数",
		Long: "pycole 统计单个 Python 文件或整个目录的代码度量：\n" +
			"总行数、去除空行和注释后的代码行数、语句数，以及测试代码的对应行数。\n" +
			"测试文件按命名约定识别（test_*.py、*_test.py、tests/ 或 test/ 目录）。",
		Args: exactlyOnePath,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showRules, _ := cmd.Flags().GetBool(rulesFlag); showRules {
				return printRules(cmd.OutOrStdout())
			}

			options, err := loadScanOptions(settings)
			if err != nil {
				return err
			}

			targetPath := args[0]
			if _, statErr := os.Stat(targetPath); statErr != nil {
				return newUsageError("invalid value for 'PATH': Path '%s' does not exist.", targetPath)
			}

			metrics, err := analyzer.AnalyzePath(targetPath)
			if err != nil {
				return err
			}

			rendered := report.Format(targetPath, metrics, options.format)
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			if options.output != "" {
				if err := report.WriteFile(options.output, rendered); err != nil {
					return err
				}
			}
			return nil
		},
	}

	scanCmd.Flags().StringP("format", "f", report.FormatTextName, "输出格式: text 或 csv（大小写不敏感）")
	scanCmd.Flags().StringP("output", "o", "", "同时把结果写入指定文件")
	scanCmd.Flags().Bool(rulesFlag, false, "展示内置的文件分类与目录排除规则后退出")
	if err := settings.BindPFlags(scanCmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	return scanCmd, nil
}
