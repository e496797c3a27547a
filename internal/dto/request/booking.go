package request

type BookSlotRequest struct {
	WorkerID string `json:"worker_id" validate:"required,uuid4"`
}
