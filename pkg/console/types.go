// Package console is the top-level client for the HMES administrative
// console API. It wires the transport, session store, auth gateway, and the
// typed resource adapters together behind one constructor.
package console

// User is a managed console account. The ID is server-assigned.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Attachment string `json:"attachment,omitempty"`
}

// Product is a sellable item in the console catalog.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"categoryId"`
	Status      string  `json:"status"`
	Attachment  string  `json:"attachment,omitempty"`
}

// Category groups products.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Attachment  string `json:"attachment,omitempty"`
}

// Device is a registered field device reporting into the platform.
type Device struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Serial     string `json:"serial"`
	UserID     string `json:"userId"`
	Status     string `json:"status"`
	Attachment string `json:"attachment,omitempty"`
}
