package enums

const (
	EVENT_CHUNK_CREATED       = "chunk_created"
	EVENT_CHUNK_DELETED       = "chunk_deleted"
	EVENT_WHITEBOARD_COMPLETE = "whiteboard_complete"
)
