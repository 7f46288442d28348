// Package scanner 提供文件分析与目录聚合能力。
// 该层负责文件读取、目录遍历和结果累加，不负责语法解析细节。
package scanner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"unicode/utf8"

	"pycole/internal/languages"
	"pycole/internal/model"
)

// ErrInvalidPath 表示路径既不是普通文件也不是目录。
var ErrInvalidPath = errors.New("invalid path")

// Service 是扫描服务对象。
// 只持有语句统计器，本身无状态，按顺序在调用方线程内完成全部工作。
type Service struct {
	counter languages.StatementCounter
}

// NewService 创建扫描服务。
// counter 为 nil 时使用基于 tree-sitter 的默认实现。
func NewService(counter languages.StatementCounter) *Service {
	if counter == nil {
		counter = languages.NewTreeSitterCounter()
	}
	return &Service{counter: counter}
}

// AnalyzePath 根据路径类型分派到单文件或目录分析。
func (s *Service) AnalyzePath(targetPath string) (model.CodeMetrics, error) {
	info, err := os.Stat(targetPath)
	if err != nil {
		if isMissingPathError(err) {
			return model.CodeMetrics{}, invalidPathError(targetPath)
		}
		return model.CodeMetrics{}, fmt.Errorf("stat path: %w", err)
	}

	switch {
	case info.Mode().IsRegular():
		return s.AnalyzeFile(targetPath)
	case info.IsDir():
		return s.AnalyzeDirectory(targetPath)
	default:
		return model.CodeMetrics{}, invalidPathError(targetPath)
	}
}

// AnalyzeFile 分析单个文件。
//
// 无权限读取或内容不是合法 UTF-8 时返回全零统计且不报错；
// 其余 I/O 错误向上返回。
func (s *Service) AnalyzeFile(filePath string) (model.CodeMetrics, error) {
	content, err := readFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return model.CodeMetrics{}, nil
		}
		return model.CodeMetrics{}, err
	}

	if !utf8.Valid(content) {
		return model.CodeMetrics{}, nil
	}

	lines := languages.SplitLines(string(content))
	totalLines := int64(len(lines))
	codeLines := languages.CountCodeLines(lines)

	if languages.IsTestFile(filePath) {
		return model.CodeMetrics{
			TotalLines:    totalLines,
			TestLines:     totalLines,
			TestCodeLines: codeLines,
		}, nil
	}

	return model.CodeMetrics{
		TotalLines: totalLines,
		CodeLines:  codeLines,
		Statements: languages.CountStatements(s.counter, content),
	}, nil
}

// AnalyzeDirectory 递归遍历目录，累加全部源码文件的统计结果。
// 排除目录按整段名称匹配并整体剪枝；根目录路径中含有排除段时结果为零。
func (s *Service) AnalyzeDirectory(root string) (model.CodeMetrics, error) {
	var total model.CodeMetrics
	if languages.HasExcludedSegment(root) {
		return total, nil
	}

	// 末尾分隔符使根目录为符号链接时仍会进入链接指向的目录。
	walkRoot := root
	if !strings.HasSuffix(walkRoot, string(filepath.Separator)) {
		walkRoot += string(filepath.Separator)
	}

	err := filepath.WalkDir(walkRoot, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// 无权限的目录直接跳过，其余错误中断遍历。
			if errors.Is(walkErr, fs.ErrPermission) {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if languages.IsExcludedDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !languages.MatchesSource(entry.Name()) {
			return nil
		}

		metrics, err := s.AnalyzeFile(path)
		if err != nil {
			return err
		}
		total = total.Add(metrics)
		return nil
	})
	if err != nil {
		return model.CodeMetrics{}, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return total, nil
}

// readFile 读取完整文件内容，文件句柄在任意返回路径上都会关闭。
func readFile(filePath string) ([]byte, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", filePath, err)
	}
	return content, nil
}

// isMissingPathError 判断 stat 错误是否意味着路径不存在或无法解析到实体。
func isMissingPathError(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP) ||
		errors.Is(err, syscall.ENAMETOOLONG)
}

func invalidPathError(targetPath string) error {
	return fmt.Errorf("path %s is neither a file nor a directory: %w", targetPath, ErrInvalidPath)
}
