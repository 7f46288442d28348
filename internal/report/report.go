// Package report 提供 pycole 的输出能力。
// 当前实现支持 text 可读格式和 CSV 格式（含文件导出）。
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"pycole/internal/model"
)

const (
	// FormatTextName 是默认的可读文本格式。
	FormatTextName = "text"
	// FormatCSVName 是两行 CSV 格式。
	FormatCSVName = "csv"

	// CSVHeader 是 CSV 输出的固定表头。
	CSVHeader = "path,total_lines,code_lines,statements,test_lines,test_code_lines"

	borderWidth = 60
)

// ErrMalformedCSV 表示 CSV 内容不是 FormatCSV 产生的两行结构。
var ErrMalformedCSV = errors.New("malformed metrics csv")

// Formats 返回支持的输出格式。
func Formats() []string {
	return []string{FormatTextName, FormatCSVName}
}

// Format 按指定格式渲染统计结果。
// csv 大小写不敏感，其它任意取值都回退为 text。
func Format(path string, metrics model.CodeMetrics, format string) string {
	if strings.EqualFold(strings.TrimSpace(format), FormatCSVName) {
		return FormatCSV(path, metrics)
	}
	return FormatText(path, metrics)
}

// FormatText 渲染带边框的可读文本块，整数右对齐并带千分位分隔符。
func FormatText(path string, metrics model.CodeMetrics) string {
	border := strings.Repeat("=", borderWidth)

	lines := []string{
		"\n" + border,
		"Python Code Analysis: " + path,
		border + "\n",
		"",
		"Total lines of code:                    " + groupRight(metrics.TotalLines),
		"Lines without comments/blanks:          " + groupRight(metrics.CodeLines) + " (excl. tests)",
		"Number of statements:                   " + groupRight(metrics.Statements) + " (excl. tests)",
		"Total lines of test code:               " + groupRight(metrics.TestLines),
		"Test lines without comments/blanks:     " + groupRight(metrics.TestCodeLines),
		"\n" + border + "\n",
	}
	return strings.Join(lines, "\n")
}

// FormatCSV 渲染表头与数据两行，数值不带分隔符，路径不加引号。
func FormatCSV(path string, metrics model.CodeMetrics) string {
	fields := make([]string, 0, 6)
	fields = append(fields, path)
	for _, value := range metrics.Fields() {
		fields = append(fields, strconv.FormatInt(value, 10))
	}
	return CSVHeader + "\n" + strings.Join(fields, ",")
}

// ParseCSV 解析 FormatCSV 的输出，返回路径与五个计数值。
// 路径中允许出现逗号，数值总是取最后五列。
func ParseCSV(content string) (string, model.CodeMetrics, error) {
	lines := strings.Split(strings.TrimRight(content, "\r\n"), "\n")
	if len(lines) != 2 {
		return "", model.CodeMetrics{}, fmt.Errorf("%w: expected 2 lines, got %d", ErrMalformedCSV, len(lines))
	}
	if strings.TrimRight(lines[0], "\r") != CSVHeader {
		return "", model.CodeMetrics{}, fmt.Errorf("%w: unexpected header %q", ErrMalformedCSV, lines[0])
	}

	columns := strings.Split(strings.TrimRight(lines[1], "\r"), ",")
	if len(columns) < 6 {
		return "", model.CodeMetrics{}, fmt.Errorf("%w: expected at least 6 columns, got %d", ErrMalformedCSV, len(columns))
	}

	split := len(columns) - 5
	values := make([]int64, 0, 5)
	for _, column := range columns[split:] {
		value, err := strconv.ParseInt(column, 10, 64)
		if err != nil {
			return "", model.CodeMetrics{}, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		values = append(values, value)
	}

	return strings.Join(columns[:split], ","), model.CodeMetrics{
		TotalLines:    values[0],
		CodeLines:     values[1],
		Statements:    values[2],
		TestLines:     values[3],
		TestCodeLines: values[4],
	}, nil
}

// WriteFile 将渲染结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteFile(path string, content string) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if writeErr := os.WriteFile(path, []byte(content), 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

// groupRight 以千分位分组并右对齐到 10 列。
func groupRight(value int64) string {
	return fmt.Sprintf("%10s", humanize.Comma(value))
}
