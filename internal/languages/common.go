package languages

import (
	"strings"
	"unicode/utf8"
)

// isLineBoundary 判断字符是否为行分隔符。
// 除 \n 与 \r 外，还包含 \v、\f、文件/组/记录分隔符、NEL 以及 Unicode 行/段分隔符。
func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}

// SplitLines 把文本拆分为物理行。
//
// 约束说明：
// - \r\n 视为一个换行
// - 文本以换行结尾时不会额外产生空行
// - 空文本返回空切片
func SplitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)

	start := 0
	for idx := 0; idx < len(text); {
		current, size := utf8.DecodeRuneInString(text[idx:])
		if !isLineBoundary(current) {
			idx += size
			continue
		}

		lines = append(lines, text[start:idx])
		idx += size
		if current == '\r' && idx < len(text) && text[idx] == '\n' {
			idx++
		}
		start = idx
	}

	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// IsCodeLine 判断一行是否为代码行：去掉首尾空白后非空，且不以 # 开头。
//
// 这是纯文本启发式：多行字符串中的内容按代码计，行尾注释不剥离，
// 三引号字符串里以 # 开头的行会被当作注释。
func IsCodeLine(line string) bool {
	stripped := strings.TrimSpace(line)
	return stripped != "" && !strings.HasPrefix(stripped, commentMarker)
}

// CountCodeLines 统计满足 IsCodeLine 的行数。
func CountCodeLines(lines []string) int64 {
	var count int64
	for _, line := range lines {
		if IsCodeLine(line) {
			count++
		}
	}
	return count
}
