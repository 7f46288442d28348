package languages

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax 表示源码无法按 Python 语法完整解析。
var ErrSyntax = errors.New("python syntax error")

// StatementCounter 定义“解析并统计语句数”的能力。
// 上层只依赖该接口，测试中可以替换为固定返回值的实现。
type StatementCounter interface {
	// ParseAndCount 解析源码并返回语句节点数量；解析失败返回 ErrSyntax。
	ParseAndCount(source []byte) (int, error)
}

// statementNodeTypes 是计为一条语句的 tree-sitter 节点类型，
// 与 Python ast.stmt 的各子类一一对应。
// elif 在 Python 语法树中是嵌套的 If，因此 elif_clause 也计数；
// decorated_definition 只是包装，内部的定义节点会被单独计数。
var statementNodeTypes = map[string]struct{}{
	"expression_statement":    {},
	"function_definition":     {},
	"class_definition":        {},
	"return_statement":        {},
	"delete_statement":        {},
	"pass_statement":          {},
	"break_statement":         {},
	"continue_statement":      {},
	"raise_statement":         {},
	"assert_statement":        {},
	"global_statement":        {},
	"nonlocal_statement":      {},
	"import_statement":        {},
	"import_from_statement":   {},
	"future_import_statement": {},
	"if_statement":            {},
	"elif_clause":             {},
	"for_statement":           {},
	"while_statement":         {},
	"with_statement":          {},
	"try_statement":           {},
	"match_statement":         {},
	"type_alias_statement":    {},
}

// StatementKinds 返回排序后的语句节点类型列表。
func StatementKinds() []string {
	kinds := make([]string, 0, len(statementNodeTypes))
	for kind := range statementNodeTypes {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// TreeSitterCounter 使用 tree-sitter 的 Python 语法统计语句。
// 每次调用都会创建独立的 parser，因此零值可直接使用。
type TreeSitterCounter struct{}

// NewTreeSitterCounter 创建基于 tree-sitter 的语句统计器。
func NewTreeSitterCounter() *TreeSitterCounter {
	return &TreeSitterCounter{}
}

// ParseAndCount 解析源码并遍历整棵语法树统计语句节点。
// tree-sitter 会做错误恢复，因此只要树中出现 ERROR/MISSING 节点就视为语法错误。
func (c *TreeSitterCounter) ParseAndCount(source []byte) (int, error) {
	if len(source) == 0 {
		return 0, nil
	}
	// 以 utf-8 解码的源码中，开头的 BOM 是非法字符。
	if bytes.HasPrefix(source, utf8BOM) {
		return 0, ErrSyntax
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return 0, fmt.Errorf("parse python source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return 0, ErrSyntax
	}

	count, legacy := countStatementNodes(root, source)
	if legacy {
		return 0, ErrSyntax
	}
	return count, nil
}

// countStatementNodes 用游标做先序遍历，避免深层嵌套时递归过深。
// 遇到 Python 3 不接受的写法时立即返回 legacy=true。
func countStatementNodes(root *sitter.Node, source []byte) (count int, legacy bool) {
	cursor := sitter.NewTreeCursor(root)
	defer cursor.Close()

	for {
		node := cursor.CurrentNode()
		if isLegacySyntax(node, source) {
			return 0, true
		}
		if _, ok := statementNodeTypes[node.Type()]; ok {
			count++
		}

		if cursor.GoToFirstChild() {
			continue
		}
		for !cursor.GoToNextSibling() {
			if !cursor.GoToParent() {
				return count, false
			}
		}
	}
}

// CountStatements 统计语句数，解析失败时返回 0 而不是错误，
// 这样单个语法错误的文件不会中断整棵目录的统计。
func CountStatements(counter StatementCounter, source []byte) int64 {
	count, err := counter.ParseAndCount(source)
	if err != nil || count < 0 {
		return 0
	}
	return int64(count)
}
