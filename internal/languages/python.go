// Package languages 提供 Python 源码的分类规则与语句统计能力。
// 该层只处理单个路径或单段文本，不负责目录遍历和结果聚合。
package languages

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// LanguageName 是被统计语言的名称。
	LanguageName = "Python"
	// SourcePattern 是源码文件名匹配规则。
	SourcePattern = "*.py"

	commentMarker  = "#"
	testPrefix     = "test_"
	testStemSuffix = "_test"
)

// testDirNames 是直接父目录名即可判定为测试文件的目录。
var testDirNames = []string{"tests", "test"}

// excludedDirNames 是目录遍历时整段匹配即跳过的目录名。
var excludedDirNames = []string{".venv", "venv", "__pycache__", ".git", "node_modules"}

// MatchesSource 判断文件名是否匹配 SourcePattern。
// 只比较 base name，大小写敏感。
func MatchesSource(path string) bool {
	matched, err := doublestar.Match(SourcePattern, filepath.Base(path))
	return err == nil && matched
}

// IsTestFile 根据命名约定判断路径是否为测试文件：
// 文件名以 test_ 开头、去掉后缀后以 _test 结尾，或直接父目录名为 tests/test。
// 只看路径字符串，不访问文件系统。
func IsTestFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, testPrefix) {
		return true
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if strings.HasSuffix(stem, testStemSuffix) {
		return true
	}

	parent := filepath.Base(filepath.Dir(path))
	for _, dirName := range testDirNames {
		if parent == dirName {
			return true
		}
	}
	return false
}

// IsExcludedDir 判断目录名是否属于固定排除集合。
func IsExcludedDir(name string) bool {
	for _, excluded := range excludedDirNames {
		if name == excluded {
			return true
		}
	}
	return false
}

// HasExcludedSegment 判断路径的任意一段是否为排除目录，
// 包括调用方给出的根目录部分。
func HasExcludedSegment(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if IsExcludedDir(segment) {
			return true
		}
	}
	return false
}

// ExcludedDirs 返回排除目录集合的副本。
func ExcludedDirs() []string {
	return append([]string(nil), excludedDirNames...)
}

// TestDirNames 返回测试目录名集合的副本。
func TestDirNames() []string {
	return append([]string(nil), testDirNames...)
}
