package types

type OperationType byte

const (
	OpCreateType OperationType = iota + 1
	OpCreateRecord
	OpSearchRecord
	OpDeleteRecord
)

func (op OperationType) String() string {
	switch op {
	case OpCreateType:
		return "create type"
	case OpCreateRecord:
		return "create record"
	case OpSearchRecord:
		return "search record"
	case OpDeleteRecord:
		return "delete record"
	default:
		return "unknown"
	}
}
