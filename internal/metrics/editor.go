package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_editor",
			Subsystem: "document",
			Name:      "mutations_total",
			Help:      "已提交的文档修改次数。",
		},
		[]string{"origin"},
	)

	lockedRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resume_editor",
			Subsystem: "document",
			Name:      "locked_rejections_total",
			Help:      "因文档锁定被拒绝的修改次数。",
		},
	)

	historyCollapsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resume_editor",
			Subsystem: "history",
			Name:      "collapsed_total",
			Help:      "与上一快照相同而未记录的提交次数。",
		},
	)

	historyStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_editor",
			Subsystem: "history",
			Name:      "steps_total",
			Help:      "撤销/重做次数。",
		},
		[]string{"direction"},
	)

	patchBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_editor",
			Subsystem: "patch",
			Name:      "batches_total",
			Help:      "AI 补丁批次处理结果。",
		},
		[]string{"result"},
	)

	syncWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_editor",
			Subsystem: "sync",
			Name:      "writes_total",
			Help:      "远端写入次数。",
		},
		[]string{"result"},
	)

	syncSupersededTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resume_editor",
			Subsystem: "sync",
			Name:      "superseded_total",
			Help:      "被更新的调度取消的待写入次数。",
		},
	)
)

func ObserveMutation(origin string) { mutationsTotal.WithLabelValues(origin).Inc() }

func LockedRejection() { lockedRejectionsTotal.Inc() }

func HistoryCollapsed() { historyCollapsedTotal.Inc() }

func HistoryStep(direction string) { historyStepsTotal.WithLabelValues(direction).Inc() }

// PatchBatch 记录一个补丁批次的结果：applied、rejected 或 skipped。
func PatchBatch(result string) { patchBatchesTotal.WithLabelValues(result).Inc() }

// SyncWrite 记录一次远端写入的结果：ok 或 error。
func SyncWrite(result string) { syncWritesTotal.WithLabelValues(result).Inc() }

func SyncSuperseded() { syncSupersededTotal.Inc() }
