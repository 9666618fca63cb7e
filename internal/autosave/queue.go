package autosave

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"resumeEditor/internal/resume"
	"resumeEditor/internal/tasks"
)

// Enqueuer 是 asynq.Client 中 QueueRemote 需要的部分。
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueRemote 将写入投递到 asynq 队列，由 worker 落库。
// 任务不重试，与直连写入的失败语义保持一致。
type QueueRemote struct {
	client Enqueuer
}

func NewQueueRemote(client Enqueuer) *QueueRemote {
	return &QueueRemote{client: client}
}

func (q *QueueRemote) UpdateResume(ctx context.Context, id string, data *resume.Data) error {
	task, err := tasks.NewResumeSyncTask(id, data)
	if err != nil {
		return fmt.Errorf("create sync task: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(0), asynq.Queue(tasks.QueueSync)); err != nil {
		return fmt.Errorf("enqueue sync task: %w", err)
	}
	return nil
}
