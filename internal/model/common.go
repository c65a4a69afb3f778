package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// DecodeStringSet jsonb 字符串数组 → 切片。空列/坏数据一律返回空切片，
// 评分路径不因脏数据失败
func DecodeStringSet(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// EncodeStringSet 切片 → jsonb 字符串数组
func EncodeStringSet(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return raw
}
