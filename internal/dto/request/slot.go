package request

type CreateSlotRequest struct {
	SlotDate     string  `json:"slot_date" validate:"required,datetime=2006-01-02"`
	StartTime    string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string  `json:"end_time" validate:"required,datetime=15:04"`
	Location     string  `json:"location" validate:"required"`
	TestType     string  `json:"test_type" validate:"required"`
	InstructorID *string `json:"instructor_id,omitempty" validate:"omitempty,uuid4"`
	Capacity     int     `json:"capacity" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"gte=0"`
	Notes        string  `json:"notes,omitempty"`
	Recurrence   string  `json:"recurrence,omitempty"`
}

type BulkCreateSlotsRequest struct {
	// Items are validated one by one so a bad draft fails alone, not the batch
	Slots []CreateSlotRequest `json:"slots" validate:"required,min=1"`
}

// UpdateSlotRequest carries partial updates; nil fields are untouched.
// Status only accepts the operator overrides.
type UpdateSlotRequest struct {
	Capacity     *int     `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes,omitempty"`
	InstructorID *string  `json:"instructor_id,omitempty" validate:"omitempty,uuid4"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=cancelled completed"`
}

// SlotFilterRequest is parsed from query parameters; empty fields are
// skipped when building the store filter
type SlotFilterRequest struct {
	PaginatedRequest
	From          string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To            string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Query         string `json:"q"`
	InstructorID  string `json:"instructor_id" validate:"omitempty,uuid4"`
	Status        string `json:"status" validate:"omitempty,oneof=available full cancelled completed"`
	AvailableOnly bool   `json:"available_only"`
}

type CancelSlotRequest struct {
	Reason string `json:"reason" validate:"required"`
}
