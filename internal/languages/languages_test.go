package languages

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsTestFile 验证前缀、后缀与直接父目录三种命名约定。
func TestIsTestFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{path: "test_example.py", want: true},
		{path: "example_test.py", want: true},
		{path: "tests/example.py", want: true},
		{path: "test/example.py", want: true},
		{path: filepath.Join("pkg", "tests", "helpers.py"), want: true},
		{path: "example.py", want: false},
		{path: "src/module.py", want: false},
		{path: "Tests/example.py", want: false},
		{path: "tests/sub/example.py", want: false},
		{path: "testing.py", want: false},
		{path: "attest_x.py", want: false},
		{path: "my_tests.py", want: false},
	}

	for _, item := range cases {
		assert.Equal(t, item.want, IsTestFile(item.path), item.path)
		// 纯函数：重复调用结果一致。
		assert.Equal(t, IsTestFile(item.path), IsTestFile(item.path), item.path)
	}
}

// TestIsTestFileIgnoresGrandparents 验证只看直接父目录。
func TestIsTestFileIgnoresGrandparents(t *testing.T) {
	assert.False(t, IsTestFile("tests/fixtures/data.py"))
	assert.True(t, IsTestFile("/abs/project/test/data.py"))
}

// TestIsCodeLine 验证空行、注释行与代码行的文本判定。
func TestIsCodeLine(t *testing.T) {
	assert.False(t, IsCodeLine(""))
	assert.False(t, IsCodeLine("   \t"))
	assert.False(t, IsCodeLine("# comment"))
	assert.False(t, IsCodeLine("    #indented comment"))
	assert.True(t, IsCodeLine("x = 1"))
	assert.True(t, IsCodeLine("    return x"))
	// 行尾注释不剥离，仍然是代码行。
	assert.True(t, IsCodeLine("x = 1  # trailing"))
	// 多行字符串中的普通文本同样计为代码行。
	assert.True(t, IsCodeLine("    continuation of a docstring"))
}

// TestSplitLines 验证行边界、结尾换行与空文本。
func TestSplitLines(t *testing.T) {
	assert.Empty(t, SplitLines(""))
	assert.Equal(t, []string{"a"}, SplitLines("a"))
	assert.Equal(t, []string{"a"}, SplitLines("a\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines("a\rb\nc"))
	assert.Equal(t, []string{"", ""}, SplitLines("\n\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\fb"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\u2028b"))
	assert.Equal(t, []string{"é", "ü"}, SplitLines("é\nü\n"))
}

// TestCodeLineAccountingIsExhaustive 验证代码行与空白/注释行之和等于总行数。
func TestCodeLineAccountingIsExhaustive(t *testing.T) {
	content := "# c\ndef f():\n    return 1\n\nx = f()\n   \n  # tail\n"
	lines := SplitLines(content)

	var blankOrComment int64
	for _, line := range lines {
		if !IsCodeLine(line) {
			blankOrComment++
		}
	}

	assert.Len(t, lines, 7)
	assert.Equal(t, int64(3), CountCodeLines(lines))
	assert.Equal(t, int64(len(lines)), CountCodeLines(lines)+blankOrComment)
}

// TestMatchesSource 验证源码后缀匹配。
func TestMatchesSource(t *testing.T) {
	assert.True(t, MatchesSource("module.py"))
	assert.True(t, MatchesSource(filepath.Join("a", "b", "module.py")))
	assert.False(t, MatchesSource("module.pyc"))
	assert.False(t, MatchesSource("module.PY"))
	assert.False(t, MatchesSource("README.md"))
}

// TestIsExcludedDir 验证排除目录为整段精确匹配。
func TestIsExcludedDir(t *testing.T) {
	for _, name := range []string{".venv", "venv", "__pycache__", ".git", "node_modules"} {
		assert.True(t, IsExcludedDir(name), name)
	}
	assert.False(t, IsExcludedDir("my_venv"))
	assert.False(t, IsExcludedDir(".github"))
	assert.False(t, IsExcludedDir("node_modules2"))
}

// TestHasExcludedSegment 验证路径中任意一段命中排除集合都会被识别。
func TestHasExcludedSegment(t *testing.T) {
	assert.True(t, HasExcludedSegment("venv"))
	assert.True(t, HasExcludedSegment(filepath.Join("base", "venv", "pkg")))
	assert.True(t, HasExcludedSegment(filepath.Join("base", ".git") + string(filepath.Separator)))
	assert.False(t, HasExcludedSegment(filepath.Join("base", "my_venv", "pkg")))
	assert.False(t, HasExcludedSegment("."))
}

// TestTreeSitterCounterCountsNestedStatements 验证会遍历整棵树而不仅是顶层。
func TestTreeSitterCounterCountsNestedStatements(t *testing.T) {
	source := []byte(`
def hello():
    x = 1
    y = 2
    return x + y

if __name__ == '__main__':
    print(hello())
`)

	count, err := NewTreeSitterCounter().ParseAndCount(source)
	require.NoError(t, err)
	// def、两次赋值、return、if、print 调用
	assert.Equal(t, 6, count)
}

// TestTreeSitterCounterElifAndDecorators 验证 elif 计为嵌套 if，装饰器包装不重复计数。
func TestTreeSitterCounterElifAndDecorators(t *testing.T) {
	source := []byte(`import functools

@functools.cache
def pick(x):
    if x > 1:
        pass
    elif x < 0:
        pass
    else:
        return x
`)

	count, err := NewTreeSitterCounter().ParseAndCount(source)
	require.NoError(t, err)
	// import、def、if、pass、elif、pass、return
	assert.Equal(t, 7, count)
}

// TestTreeSitterCounterEmptySource 验证空源码没有语句。
func TestTreeSitterCounterEmptySource(t *testing.T) {
	count, err := NewTreeSitterCounter().ParseAndCount(nil)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// TestTreeSitterCounterSyntaxError 验证语法错误返回 ErrSyntax。
func TestTreeSitterCounterSyntaxError(t *testing.T) {
	_, err := NewTreeSitterCounter().ParseAndCount([]byte("def broken(:\n    return\n"))
	require.ErrorIs(t, err, ErrSyntax)
}

// TestTreeSitterCounterRejectsPython2Syntax 验证 Python 3 解析器拒绝的写法一律视为语法错误。
func TestTreeSitterCounterRejectsPython2Syntax(t *testing.T) {
	cases := map[string]string{
		"print statement":  "print 'hi'\n",
		"exec statement":   "exec 'x = 1'\n",
		"backticks":        "x = `1`\n",
		"long integer":     "x = 10L\n",
		"legacy octal":     "x = 0777\n",
		"except comma":     "try:\n    pass\nexcept ValueError, e:\n    pass\n",
		"delete call":      "del f()\n",
		"byte order mark":  "\ufeffx = 1\n",
		"mixed with valid": "x = 1\ny = 2\nprint x\n",
	}

	counter := NewTreeSitterCounter()
	for name, source := range cases {
		t.Run(name, func(t *testing.T) {
			count, err := counter.ParseAndCount([]byte(source))
			require.ErrorIs(t, err, ErrSyntax)
			assert.Zero(t, count)
			assert.Zero(t, CountStatements(counter, []byte(source)))
		})
	}
}

// TestTreeSitterCounterAcceptsPython3Forms 验证与旧写法相近的合法写法仍被正常统计。
func TestTreeSitterCounterAcceptsPython3Forms(t *testing.T) {
	cases := map[string]int{
		"print call":       1,
		"delete targets":   1,
		"zero literal":     1,
		"underscored":      1,
		"octal prefix":     1,
		"except tuple":     3,
		"backtick string":  1,
		"backtick comment": 1,
	}
	sources := map[string]string{
		"print call":       "print(x)\n",
		"delete targets":   "del a, b.c, d[0], (e, [f])\n",
		"zero literal":     "x = 00\n",
		"underscored":      "x = 1_000\n",
		"octal prefix":     "x = 0o777\n",
		"except tuple":     "try:\n    pass\nexcept (ValueError, TypeError) as e:\n    pass\n",
		"backtick string":  "x = '`1`'\n",
		"backtick comment": "x = 1  # `1`\n",
	}

	counter := NewTreeSitterCounter()
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			count, err := counter.ParseAndCount([]byte(sources[name]))
			require.NoError(t, err)
			assert.Equal(t, want, count)
		})
	}
}

// fakeCounter 是固定返回值的语句统计器。
type fakeCounter struct {
	count int
	err   error
}

func (f fakeCounter) ParseAndCount([]byte) (int, error) {
	return f.count, f.err
}

// TestCountStatementsFailSoft 验证解析失败时返回 0。
func TestCountStatementsFailSoft(t *testing.T) {
	assert.Equal(t, int64(4), CountStatements(fakeCounter{count: 4}, nil))
	assert.Zero(t, CountStatements(fakeCounter{count: 4, err: ErrSyntax}, nil))
	assert.Zero(t, CountStatements(fakeCounter{err: errors.New("boom")}, nil))
	assert.Zero(t, CountStatements(NewTreeSitterCounter(), []byte("x = (\n")))
	assert.Positive(t, CountStatements(NewTreeSitterCounter(), []byte("x = 1\n")))
}

// TestRules 确认规则清单包含排除目录与测试目录。
func TestRules(t *testing.T) {
	byName := make(map[string]RuleDescriptor)
	for _, rule := range Rules() {
		byName[rule.Name] = rule
	}

	require.Contains(t, byName, "excluded-dirs")
	assert.Equal(t, []string{".git", ".venv", "__pycache__", "node_modules", "venv"}, byName["excluded-dirs"].Values)
	assert.Equal(t, "test, tests", byName["test-parent-dirs"].String())
	assert.Equal(t, []string{SourcePattern}, byName["source-pattern"].Values)
}
