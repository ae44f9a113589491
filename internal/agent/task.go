package agent

import "fmt"

// Task identifies one planner operation. The set is closed: adding a
// task kind is a compile-time change, and every switch over Task handles
// all kinds.
type Task int

const (
	// TaskSummarize produces the structured RAG summary (result key "summary").
	TaskSummarize Task = iota
	// TaskCompareMethods compares methods across retrieved papers
	// (result key "methods_comparison").
	TaskCompareMethods
	// TaskSlideOutline produces an 8-slide outline (result key "slides").
	TaskSlideOutline
)

// String returns the task's request name.
func (t Task) String() string {
	switch t {
	case TaskSummarize:
		return "summarize"
	case TaskCompareMethods:
		return "compare_methods"
	case TaskSlideOutline:
		return "create_slide_outline"
	default:
		return fmt.Sprintf("Task(%d)", int(t))
	}
}

// Key returns the name under which the task's output appears in a
// PlanResult.
func (t Task) Key() string {
	switch t {
	case TaskSummarize:
		return "summary"
	case TaskCompareMethods:
		return "methods_comparison"
	case TaskSlideOutline:
		return "slides"
	default:
		return t.String()
	}
}

// ParseTask resolves a request name to a Task. Unknown names are an
// explicit error; callers that want unknown names skipped instead use
// PlanAndExecute.
func ParseTask(name string) (Task, error) {
	switch name {
	case "summarize":
		return TaskSummarize, nil
	case "compare_methods":
		return TaskCompareMethods, nil
	case "create_slide_outline":
		return TaskSlideOutline, nil
	default:
		return 0, fmt.Errorf("unknown task %q", name)
	}
}

// AllTasks lists every task in default execution order.
func AllTasks() []Task {
	return []Task{TaskSummarize, TaskCompareMethods, TaskSlideOutline}
}

// PlanResult maps task result keys to generated text. It is built
// incrementally and scoped to one plan invocation.
type PlanResult map[string]string
