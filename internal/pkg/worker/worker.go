package worker

import (
	"time"

	"studyshare/internal/domain/interaction/model"
	"studyshare/pkg/logger"
	"studyshare/pkg/metrics"

	"go.uber.org/zap"
)

// EventTask 一条待落库的互动事件（浏览/下载），追加写入互动日志表
type EventTask struct {
	UserID          string
	ContentType     model.ContentType
	ContentID       string
	InteractionType model.InteractionType
	Retry           int // 重试次数
}

// EventWriter 事件落库接口，由 interaction 仓储实现
type EventWriter interface {
	CreateInteraction(i *model.Interaction) error
}

// EventPool 互动事件异步写入池
// 浏览/下载计数本身是同步原子更新的，这里只负责追加事件日志，
// 丢一条事件不影响计数正确性，所以允许队列满时丢弃
type EventPool struct {
	TaskQueue  chan EventTask
	RetryQueue chan EventTask
	Writer     EventWriter
	WorkerNum  int
	MaxRetry   int
}

func NewEventPool(writer EventWriter, workerNum int, bufferSize int) *EventPool {
	if workerNum <= 0 {
		workerNum = 4
	}
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	return &EventPool{
		TaskQueue:  make(chan EventTask, bufferSize),
		RetryQueue: make(chan EventTask, bufferSize/2),
		Writer:     writer,
		WorkerNum:  workerNum,
		MaxRetry:   3,
	}
}

func (p *EventPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
	logger.Log.Info("Event pool started", zap.Int("workers", p.WorkerNum))
}

func (p *EventPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.processTask(task); err != nil {
			logger.Log.Warn("Failed to persist interaction event",
				zap.Int("worker", id),
				zap.String("user_id", task.UserID),
				zap.String("content_id", task.ContentID),
				zap.Error(err))

			// 如果未达到最大重试次数，加入重试队列
			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
				default:
					p.logFailedTask(task, err)
				}
			} else {
				p.logFailedTask(task, err)
			}
		}
	}
}

func (p *EventPool) retryWorker() {
	for task := range p.RetryQueue {
		// 延迟重试，避免立即重试
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
		default:
			p.logFailedTask(task, nil)
		}
	}
}

func (p *EventPool) processTask(task EventTask) error {
	event := &model.Interaction{
		UserID:          task.UserID,
		ContentType:     task.ContentType,
		ContentID:       task.ContentID,
		InteractionType: task.InteractionType,
	}
	if err := p.Writer.CreateInteraction(event); err != nil {
		return err
	}
	metrics.GetGlobalCollector().RecordInteraction(string(task.ContentType), string(task.InteractionType))
	return nil
}

func (p *EventPool) logFailedTask(task EventTask, err error) {
	// 事件日志是尽力而为的，失败只记录日志
	logger.Log.Error("Interaction event dropped",
		zap.String("user_id", task.UserID),
		zap.String("content_type", string(task.ContentType)),
		zap.String("content_id", task.ContentID),
		zap.String("interaction_type", string(task.InteractionType)),
		zap.Error(err))
}

// Record 投递一条事件，队列满时丢弃
func (p *EventPool) Record(task EventTask) {
	select {
	case p.TaskQueue <- task:
	default:
		p.logFailedTask(task, nil)
	}
}
