package company

type Company struct {
	Code        string
	Name        string
	Description *string
}
