package avgarray

// RefView is a parallel array of references into a value slice. Slot i
// refers to element i of the slice it was built over. References are
// stored as indices so the view cannot observe a stale backing array, and
// no method reseats a slot after construction.
type RefView struct {
	base []int
	refs []int
}

// NewRefView builds a view whose slot i refers to values[i].
// The view shares values; writes through either are visible in both.
func NewRefView(values []int) *RefView {
	refs := make([]int, len(values))
	for i := range refs {
		refs[i] = i
	}
	return &RefView{base: values, refs: refs}
}

// Len returns the number of slots, always equal to the length of the
// value slice the view was built over.
func (v *RefView) Len() int {
	return len(v.refs)
}

// At returns the value slot i refers to.
func (v *RefView) At(i int) int {
	return v.base[v.refs[i]]
}

// Set writes x to the element slot i refers to.
func (v *RefView) Set(i, x int) {
	v.base[v.refs[i]] = x
}
