package model

// All lists every table model, in migration order.
func All() []any {
	return []any{
		&Claim{},
		&TestScript{},
		&Defect{},
		&Risk{},
	}
}
