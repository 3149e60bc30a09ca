package handler

type ContextKey string

var (
	RoleCtxKey     ContextKey = "role"
	SubCtxKey      ContextKey = "sub"
	MyInfoCtx      ContextKey = "myInfo"
	UserInfoCtx    ContextKey = "userInfo"
	DepartmentCtx  ContextKey = "department"
	TeamCtx        ContextKey = "team"
	WardCtx        ContextKey = "ward"
	ShiftPresetCtx ContextKey = "shiftPreset"
	RotaScopeCtx   ContextKey = "rotaScope"
	WorkloadDayCtx ContextKey = "workloadDay"
)
