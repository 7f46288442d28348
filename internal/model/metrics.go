// Package model 定义 pycole 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

// CodeMetrics 表示一个文件或一组文件的统计结果。
//
// 注意：
// - TotalLines 统计全部物理行（包含空行和注释行），不区分测试与非测试
// - CodeLines/Statements 只来自非测试文件
// - TestLines/TestCodeLines 只来自测试文件
//
// 该结构按值传递，构造后不再修改；聚合通过 Add 生成新值。
type CodeMetrics struct {
	TotalLines    int64 `json:"total_lines"`
	CodeLines     int64 `json:"code_lines"`
	Statements    int64 `json:"statements"`
	TestLines     int64 `json:"test_lines"`
	TestCodeLines int64 `json:"test_code_lines"`
}

// Add 返回两个统计结果逐字段相加后的新值。
// 零值是加法单位元，且加法满足交换律和结合律。
func (m CodeMetrics) Add(other CodeMetrics) CodeMetrics {
	return CodeMetrics{
		TotalLines:    m.TotalLines + other.TotalLines,
		CodeLines:     m.CodeLines + other.CodeLines,
		Statements:    m.Statements + other.Statements,
		TestLines:     m.TestLines + other.TestLines,
		TestCodeLines: m.TestCodeLines + other.TestCodeLines,
	}
}

// Sum 从零值开始依次累加全部统计结果。
func Sum(items ...CodeMetrics) CodeMetrics {
	var total CodeMetrics
	for _, item := range items {
		total = total.Add(item)
	}
	return total
}

// IsZero 判断是否为全零统计。
func (m CodeMetrics) IsZero() bool {
	return m == CodeMetrics{}
}

// Fields 按 CSV 列顺序返回五个计数值。
func (m CodeMetrics) Fields() []int64 {
	return []int64{m.TotalLines, m.CodeLines, m.Statements, m.TestLines, m.TestCodeLines}
}
