package languages

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// utf8BOM 是 U+FEFF 的 utf-8 编码。
var utf8BOM = []byte("\xef\xbb\xbf")

// backtickHosts 是允许在文本中出现反引号的叶子节点类型。
var backtickHosts = map[string]struct{}{
	"comment":         {},
	"string":          {},
	"string_start":    {},
	"string_content":  {},
	"string_end":      {},
	"escape_sequence": {},
}

// isLegacySyntax 判断节点是否为 Python 2 写法。
// tree-sitter 的 Python 语法兼容 print/exec 语句、10L、旧式八进制、
// `except X, e` 等写法，而 Python 3 解析器会直接拒绝它们。
func isLegacySyntax(node *sitter.Node, source []byte) bool {
	switch node.Type() {
	case "print_statement", "exec_statement":
		return true
	case "integer":
		return isLegacyInteger(node.Content(source))
	case "except_clause", "except_group_clause":
		return hasDirectChild(node, ",")
	case "delete_statement":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if !isDeleteTarget(node.NamedChild(i)) {
				return true
			}
		}
		return false
	}

	if node.ChildCount() == 0 {
		if _, ok := backtickHosts[node.Type()]; !ok {
			return strings.Contains(node.Content(source), "`")
		}
	}
	return false
}

// isLegacyInteger 识别 10L 与 0777 两种 Python 3 不再接受的整数字面量。
func isLegacyInteger(text string) bool {
	if strings.HasSuffix(text, "l") || strings.HasSuffix(text, "L") {
		return true
	}
	digits := strings.ReplaceAll(text, "_", "")
	if len(digits) < 2 || digits[0] != '0' {
		return false
	}
	nonZero := false
	for _, r := range digits[1:] {
		if r < '0' || r > '9' {
			return false
		}
		if r != '0' {
			nonZero = true
		}
	}
	return nonZero
}

// isDeleteTarget 判断 del 的目标是否合法：名字、属性、下标，或由它们组成的元组/列表。
func isDeleteTarget(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Type() {
	case "identifier", "attribute", "subscript", "comment":
		return true
	case "expression_list", "tuple", "list", "parenthesized_expression":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if !isDeleteTarget(node.NamedChild(i)) {
				return false
			}
		}
		return true
	}
	return false
}

func hasDirectChild(node *sitter.Node, kind string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == kind {
			return true
		}
	}
	return false
}
