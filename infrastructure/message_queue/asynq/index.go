package asynq

import (
	"errors"
	"time"

	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	queue_tasks "certschool.io/infrastructure/message_queue/tasks"
	mq_types "certschool.io/infrastructure/message_queue/types"
	"github.com/hibiken/asynq"
)

// ErrQueueDisabled is returned by Enqueue when no redis address is configured.
var ErrQueueDisabled = errors.New("task queue disabled")

type AsynqBroker struct {
	Client *asynq.Client
	server *asynq.Server
	opt    *asynq.RedisClientOpt
}

func NewAsynqBroker(cfg *env.Config) *AsynqBroker {
	if cfg.RedisAddr == "" {
		logger.Warning("redis address missing. task queue disabled")
		return &AsynqBroker{}
	}
	opt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	return &AsynqBroker{
		Client: asynq.NewClient(opt),
		opt:    &opt,
	}
}

func (aq *AsynqBroker) Start() {
	if aq.opt == nil {
		return
	}
	aq.server = asynq.NewServer(
		*aq.opt,
		asynq.Config{
			Concurrency: 20,
			Queues: map[string]int{
				string(mq_types.High):   7,
				string(mq_types.Medium): 2,
				string(mq_types.Low):    1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(string(queue_tasks.HandleEmailDeliveryTaskName), queue_tasks.HandleEmailDeliveryTask)
	mux.HandleFunc(string(queue_tasks.HandleReconcilePaymentTaskName), queue_tasks.HandleReconcilePaymentTask)

	if err := aq.server.Run(mux); err != nil {
		logger.Error("task queue server stopped", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}

func (aq *AsynqBroker) Enqueue(task mq_types.QueueTask) error {
	if aq.Client == nil {
		logger.Warning("dropping task because the queue is disabled", logger.LoggerOptions{
			Key:  "task",
			Data: task.Name,
		})
		return ErrQueueDisabled
	}
	if task.TimeOut == 0 {
		task.TimeOut = 60
	}
	if task.MaxRetry == 0 {
		task.MaxRetry = 10
	}
	if task.Priority == "" {
		task.Priority = mq_types.Medium
	}
	_, err := aq.Client.Enqueue(asynq.NewTask(string(task.Name), task.Payload),
		asynq.ProcessIn(task.ProcessIn*time.Second),
		asynq.MaxRetry(task.MaxRetry),
		asynq.Timeout(time.Second*task.TimeOut),
		asynq.Queue(string(task.Priority)))
	if err != nil {
		logger.Error("failed to enqueue task", logger.LoggerOptions{
			Key:  "task",
			Data: task.Name,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	return err
}

func (aq *AsynqBroker) Shutdown() {
	if aq.server != nil {
		aq.server.Shutdown()
	}
	if aq.Client != nil {
		aq.Client.Close()
	}
}
