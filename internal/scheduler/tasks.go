package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskRegionCatalogWarm = "regions.catalog.warm"

// Reasons recorded on warm tasks.
const (
	WarmReasonStartup  = "startup"
	WarmReasonPeriodic = "periodic"
	WarmReasonManual   = "manual"
)

type RegionCatalogWarmPayload struct {
	Reason string `json:"reason"`
}

func NewRegionCatalogWarmTask(payload RegionCatalogWarmPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRegionCatalogWarm, data), nil
}

func ParseRegionCatalogWarmPayload(task *asynq.Task) (RegionCatalogWarmPayload, error) {
	var payload RegionCatalogWarmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RegionCatalogWarmPayload{}, err
	}
	return payload, nil
}
