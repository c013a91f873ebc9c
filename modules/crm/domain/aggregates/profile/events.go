package profile

type CreatedEvent struct {
	PersonID int64
	Record   CanonicalRecord
}

type UpdatedEvent struct {
	PersonID int64
	Edit     ProfileEdit
}

type DeletedEvent struct {
	PersonID int64
}
