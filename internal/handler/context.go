package handler

type ContextKey string

var (
	SubCtxKey    ContextKey = "sub"
	MyInfoCtx    ContextKey = "myInfo"
	PersonCtx    ContextKey = "person"
	ShiftCtx     ContextKey = "shift"
	WeekCtx      ContextKey = "week"
	RequestIDCtx ContextKey = "requestID"
)
