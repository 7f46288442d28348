package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"pycole/internal/languages"
)

// rulesFlag 让命令只展示内置的源码匹配、测试文件识别与目录排除规则。
// 规则以参数而非子命令提供，这样名为 rules 的目录仍可作为 PATH 分析。
const rulesFlag = "rules"

// printRules 以两列对齐的表格输出全部内置规则。
func printRules(out io.Writer) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintln(writer, "RULE\tVALUES"); err != nil {
		return err
	}

	for _, item := range languages.Rules() {
		if _, err := fmt.Fprintf(writer, "%s\t%s\n", item.Name, item.String()); err != nil {
			return err
		}
	}

	return writer.Flush()
}
