package walk

import "sablec/types"

// resolveIntLits is the deferred integer literal resolution pass: any
// expression whose pending untyped integer type was never forced by context
// defaults to i32.  After this pass no untyped annotation survives, which
// lowering relies on.
func (c *Checker) resolveIntLits() {
	for _, expr := range c.pending {
		if types.IsUntyped(c.table.TypeOf(expr)) {
			c.bindUntyped(expr, types.PrimType(types.PrimI32))
		}
	}

	c.pending = nil
}
