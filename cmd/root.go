// Package cmd 提供 pycole 的命令行入口。
// 只有一个命令，所有附加功能都以参数提供，任何位置参数都被当作 PATH。
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"pycole/internal/model"
	"pycole/internal/scanner"
)

// pathAnalyzer 是命令层依赖的核心能力，测试中可替换。
type pathAnalyzer interface {
	AnalyzePath(path string) (model.CodeMetrics, error)
}

// Execute 组装根命令并执行，返回进程退出码。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) int {
	return run(version, scanner.NewService(nil), os.Args[1:], os.Stdout, os.Stderr)
}

// run 执行一次完整调用：解析参数、分析、输出，并在失败时写出错误信息。
func run(version string, analyzer pathAnalyzer, args []string, stdout io.Writer, stderr io.Writer) int {
	rootCmd, err := newRootCmd(version, analyzer)
	if err != nil {
		reportError(stderr, "pycole", err)
		return ExitCode(err)
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	executed, err := rootCmd.ExecuteC()
	if err != nil {
		commandPath := rootCmd.CommandPath()
		if executed != nil {
			commandPath = executed.CommandPath()
		}
		reportError(stderr, commandPath, err)
	}
	return ExitCode(err)
}

// newRootCmd 创建根命令。
// 根命令本身即是分析命令：pycole PATH [--format text|csv]。
// 不注册子命令，因此 cobra 也不会自动加入 help/completion 子命令。
func newRootCmd(version string, analyzer pathAnalyzer) (*cobra.Command, error) {
	rootCmd, err := newScanCmd(analyzer)
	if err != nil {
		return nil, err
	}
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("pycole version {{.Version}}\n")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	return rootCmd, nil
}
