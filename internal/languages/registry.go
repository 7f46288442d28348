package languages

import (
	"sort"
	"strings"
)

// RuleDescriptor 用于对外展示一条固定分类规则及其取值。
type RuleDescriptor struct {
	Name   string
	Values []string
}

// Rules 返回当前内置的全部分类规则，供 --rules 参数展示。
// 规则是常量，不支持配置。
func Rules() []RuleDescriptor {
	excluded := ExcludedDirs()
	sort.Strings(excluded)

	testDirs := TestDirNames()
	sort.Strings(testDirs)

	return []RuleDescriptor{
		{Name: "language", Values: []string{LanguageName}},
		{Name: "source-pattern", Values: []string{SourcePattern}},
		{Name: "comment-marker", Values: []string{commentMarker}},
		{Name: "test-file-prefix", Values: []string{testPrefix}},
		{Name: "test-file-suffix", Values: []string{testStemSuffix + ".*"}},
		{Name: "test-parent-dirs", Values: testDirs},
		{Name: "excluded-dirs", Values: excluded},
		{Name: "statement-kinds", Values: StatementKinds()},
	}
}

// String 以逗号拼接规则取值。
func (d RuleDescriptor) String() string {
	return strings.Join(d.Values, ", ")
}
