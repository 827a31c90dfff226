package user

type IdentityGenerator interface {
	GenerateID() ID
}
