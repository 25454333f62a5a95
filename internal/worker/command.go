package worker

// Command tasks understood by the worker
const (
	TaskExecute       = "execute"
	TaskChangeContext = "changeContext"
)

// Worker roles passed as the first process argument
const (
	RoleJavaGuard  = "JavaGuard"
	RoleAssetGuard = "AssetGuard"
)

// Functions executed by the worker
const (
	FuncValidateJava       = "validateJava"
	FuncEnqueueOpenJDK     = "_enqueueOpenJDK"
	FuncProcessDlQueues    = "processDlQueues"
	FuncValidateEverything = "validateEverything"
)

// Command is a request sent to the worker
type Command struct {
	Task     string `json:"task"`
	Function string `json:"function,omitempty"`
	ArgsArr  []any  `json:"argsArr,omitempty"`
	Class    string `json:"class,omitempty"`
	Args     []any  `json:"args,omitempty"`
}

// Execute builds a command running function with args on the worker
func Execute(function string, args ...any) Command {
	return Command{Task: TaskExecute, Function: function, ArgsArr: args}
}

// ChangeContext builds a command switching the worker to class
func ChangeContext(class string, args ...any) Command {
	return Command{Task: TaskChangeContext, Class: class, Args: args}
}

// DownloadQueue names a worker download queue and its parallelism
type DownloadQueue struct {
	ID    string `json:"id"`
	Limit int    `json:"limit"`
}
