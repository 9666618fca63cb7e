package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"resumeEditor/internal/resume"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeResumeSync = "resume:sync"

	QueueSync = "sync"
)

// ResumeSyncPayload 携带一次完整文档写入 {id, data}。
type ResumeSyncPayload struct {
	ResumeID string       `json:"resume_id"`
	Data     *resume.Data `json:"data"`
}

// NewResumeSyncTask 构造一个简历同步任务。
func NewResumeSyncTask(id string, data *resume.Data) (*asynq.Task, error) {
	payload, err := json.Marshal(ResumeSyncPayload{
		ResumeID: id,
		Data:     data,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResumeSync, payload), nil
}

// ParseResumeSyncPayload 解析任务负载。
func ParseResumeSyncPayload(raw []byte) (ResumeSyncPayload, error) {
	var payload ResumeSyncPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ResumeSyncPayload{}, fmt.Errorf("decode resume sync payload: %w", err)
	}
	if payload.ResumeID == "" || payload.Data == nil {
		return ResumeSyncPayload{}, fmt.Errorf("resume sync payload is incomplete")
	}
	payload.Data.Normalize()
	return payload, nil
}
