package queue

import (
	"github.com/tradeposthq/tradepost/internal/service"
)

type Queue struct {
	filler    service.QueueFiller
	publisher service.Publisher
}

func NewQueue(filler service.QueueFiller, publisher service.Publisher) *Queue {
	return &Queue{
		filler:    filler,
		publisher: publisher,
	}
}

const (
	TaskTypeFillQueue   = "rotation:fill"
	TaskTypePublishPost = "post:publish"
)

type FillQueuePayload struct {
	CompanyID int64 `json:"company_id"`
}

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
