package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"pycole/internal/scanner"
)

// 进程退出码。
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsageError = 2
)

// UsageError 表示命令行参数校验失败，由命令层产生，不属于核心错误。
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	if e == nil || e.Err == nil {
		return "usage error"
	}
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newUsageError(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsageError 判断错误链中是否包含 UsageError。
func IsUsageError(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}

// ExitCode 把错误映射为进程退出码。
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsUsageError(err):
		return ExitUsageError
	default:
		return ExitFailure
	}
}

// errorLabel 是错误输出的前缀；非法路径与参数错误用 Error，其余为 Unexpected error。
func errorLabel(err error) string {
	if IsUsageError(err) || errors.Is(err, scanner.ErrInvalidPath) {
		return "Error:"
	}
	return "Unexpected error:"
}

// reportError 把错误写到 stderr，标签使用红色。
// 是否着色取决于 writer 本身是否为终端，而不是 stdout。
func reportError(writer io.Writer, commandPath string, err error) {
	label := color.New(color.FgRed, color.Bold)
	if colorEnabled(writer) {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	_, _ = fmt.Fprintf(writer, "%s %v\n", label.Sprint(errorLabel(err)), err)

	if IsUsageError(err) {
		_, _ = fmt.Fprintf(writer, "Try '%s --help' for help.\n", commandPath)
	}
}

// colorEnabled 判断 writer 是否为终端且未设置 NO_COLOR。
func colorEnabled(writer io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
