package types

// ToastVariant selects the visual treatment of a notification.
type ToastVariant string

const (
	ToastPrimary ToastVariant = "primary"
	ToastInfo    ToastVariant = "info"
	ToastDanger  ToastVariant = "danger"
	ToastSuccess ToastVariant = "success"
)

// Toast is one transient notification. Identity is used solely to locate
// and remove its rendered representation.
type Toast struct {
	ID      string
	Title   string
	Body    string
	Variant ToastVariant
}
