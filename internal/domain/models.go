package domain

import "time"

// User учётная запись магазина. Password хранится в виде bcrypt-хэша.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Product товар каталога. Цена в рупиях, целое число.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	ImageUrl    string `json:"imageUrl"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusComplete   OrderStatus = "Complete"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// ValidStatus проверяет, что метка входит в пять допустимых значений
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusComplete, OrderStatusCancelled:
		return true
	}
	return false
}

// GuestUserID подставляется в заказ, когда покупатель не авторизован
const GuestUserID = "guest"

// Order сущность заказа. ProductName и TotalPrice — снимок товара на
// момент оформления: последующее изменение цены заказ не трогает.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	ProductID    string      `json:"productId"`
	ProductName  string      `json:"productName"`
	TotalPrice   int64       `json:"totalPrice"`
	BuyerName    string      `json:"buyerName"`
	BuyerPhone   string      `json:"buyerPhone"`
	BuyerAddress string      `json:"buyerAddress"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}
