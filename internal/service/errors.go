package service

import "errors"

// 评分引擎错误分类。评分本身（输入合法且存在时）不会失败：
// 不可满足的需求表现为低分+硬性淘汰条目，而不是错误
var (
	// ErrInvalidInput 输入非法（坐标越界、半径≤0、缺少标识符），计算前拒绝，不可重试
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound 引用的房源/招标记录不存在，评分前拒绝，不可重试
	ErrNotFound = errors.New("record not found")
	// ErrUpstreamUnavailable 存在度数据源超时或出错，可重试；与零结果严格区分
	ErrUpstreamUnavailable = errors.New("upstream data source unavailable")
)
