package middlewares

// Keys for values stored on *gin.Context.
const (
	CtxRequestID   = "request_id"
	CtxCurrentUser = "auth.user"
)
