package msgs

const (
	MsgOperationFailed   = "operation failed"
	MsgAuthenticated     = "Authenticated"
	MsgLoggedOut         = "Logged out"
	MsgNotAuthenticated  = "Not authenticated"
	MsgYouMustLoginFirst = "you must login first"
	MsgChunkDeleted      = "Chunk deleted"
	MsgWhiteboardsReset  = "whiteboards reset"
	MsgExportArchived    = "export archived"
)
