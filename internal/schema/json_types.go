package schema

import (
	"database/sql/driver"
	"encoding/json"
)

// JSONArray 用于以 TEXT 列存储 JSON 字符串数组
type JSONArray []string

// Value 实现 driver.Valuer 接口
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONArray, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*j = make(JSONArray, 0)
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// ChatMessage 面试模拟中的单条对话
type ChatMessage struct {
	Role    string `json:"role"` // user / assistant
	Content string `json:"content"`
}

// JSONMessages 用于以 TEXT 列存储对话列表
type JSONMessages []ChatMessage

// Value 实现 driver.Valuer 接口
func (j JSONMessages) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSONMessages) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONMessages, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*j = make(JSONMessages, 0)
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// RoadmapStep 学习路线中的单个步骤
type RoadmapStep struct {
	Title  string `json:"title"`
	Status string `json:"status"` // pending / completed
}

// JSONSteps 用于以 TEXT 列存储路线步骤列表
type JSONSteps []RoadmapStep

// Value 实现 driver.Valuer 接口
func (j JSONSteps) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSONSteps) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONSteps, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*j = make(JSONSteps, 0)
		return nil
	}

	return json.Unmarshal(bytes, j)
}
