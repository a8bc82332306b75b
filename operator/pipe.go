package operator

import (
	"github.com/ducka/go-marbles/observe"
)

type (
	OperatorFunc[I any, O any] func(source observe.Observable[I]) observe.Observable[O]
)

// If there is a commonly used sequence of operators in your code, use the `Pipe` functions to
// extract the sequence into a new operator.
func Pipe1[S any, O1 any](
	source observe.Observable[S],
	f1 OperatorFunc[S, O1],
) observe.Observable[O1] {
	return f1(source)
}

func Pipe2[S any, O1 any, O2 any](
	source observe.Observable[S],
	f1 OperatorFunc[S, O1],
	f2 OperatorFunc[O1, O2],
) observe.Observable[O2] {
	return f2(f1(source))
}

func Pipe3[S any, O1 any, O2 any, O3 any](
	source observe.Observable[S],
	f1 OperatorFunc[S, O1],
	f2 OperatorFunc[O1, O2],
	f3 OperatorFunc[O2, O3],
) observe.Observable[O3] {
	return f3(f2(f1(source)))
}

func Pipe4[S any, O1 any, O2 any, O3 any, O4 any](
	source observe.Observable[S],
	f1 OperatorFunc[S, O1],
	f2 OperatorFunc[O1, O2],
	f3 OperatorFunc[O2, O3],
	f4 OperatorFunc[O3, O4],
) observe.Observable[O4] {
	return f4(f3(f2(f1(source))))
}

// Compose chains operators of the same type into one.
func Compose[T any](operators ...OperatorFunc[T, T]) OperatorFunc[T, T] {
	return func(source observe.Observable[T]) observe.Observable[T] {
		result := source
		for _, op := range operators {
			result = op(result)
		}
		return result
	}
}
