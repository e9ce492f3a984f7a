package messagequeue

import (
	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/message_queue/asynq"
	mq_types "certschool.io/infrastructure/message_queue/types"
)

var TaskQueue mq_types.TaskQueueBroker

func StartQueue(cfg *env.Config) {
	TaskQueue = asynq.NewAsynqBroker(cfg)
	go TaskQueue.Start()
}
