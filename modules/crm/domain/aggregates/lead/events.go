package lead

type CreatedEvent struct {
	Result Lead
}

type StatusChangedEvent struct {
	Previous Status
	Result   Lead
}
