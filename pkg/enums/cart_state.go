package enums

// CartState tracks the lifecycle of an in-memory cart engine.
type CartState string

const (
	CartStateLoading CartState = "loading"
	CartStateReady   CartState = "ready"
)

// String implements fmt.Stringer.
func (c CartState) String() string {
	return string(c)
}
