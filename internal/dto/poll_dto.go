package dto

// PollTargetRequest names the device/group pair for subscription, reset and
// one-shot run endpoints.
type PollTargetRequest struct {
	GroupId  string `json:"group_id" validate:"required,max=64"`
	DeviceId string `json:"device_id" validate:"required,max=128"`
}

type PollRunResponse struct {
	Result string `json:"result"`
}

type PollTriggerResponse struct {
	Enqueued int `json:"enqueued"`
}

// PublishPollRequestMessage is the payload on the poll queue topic.
type PublishPollRequestMessage struct {
	GroupId  string `json:"group_id"`
	DeviceId string `json:"device_id"`
}
