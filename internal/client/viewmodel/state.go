package viewmodel

// Phase tags which variant of State is populated.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the list screen state: Loading, Success(Items) or Error(Message).
// Items is only meaningful in PhaseSuccess and Message only in PhaseError.
type State[T any] struct {
	Phase   Phase
	Items   []T
	Message string
}

func Loading[T any]() State[T] {
	return State[T]{Phase: PhaseLoading}
}

func Success[T any](items []T) State[T] {
	if items == nil {
		items = []T{}
	}
	return State[T]{Phase: PhaseSuccess, Items: items}
}

func Failure[T any](message string) State[T] {
	return State[T]{Phase: PhaseError, Message: message}
}

func (s State[T]) clone() State[T] {
	if s.Items != nil {
		s.Items = append([]T(nil), s.Items...)
	}
	return s
}
