package model

// CartItemRequest is the payload for adding or updating a cart entry.
type CartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderCommitRequest is the payload for committing cart entries into an
// order. ProductIDs selects which cart entries take part; quantities come
// from the cart, never from the client.
type OrderCommitRequest struct {
	AddressID  int64     `json:"addressId"`
	PayMethod  PayMethod `json:"payMethod"`
	ProductIDs []int64   `json:"productIds"`
}

// OrderPreviewRequest is the payload for the pre-commit order summary.
type OrderPreviewRequest struct {
	ProductIDs []int64 `json:"productIds"`
}

// OrderReviewRequest carries per-product comments for a delivered order.
// Keys are product ids of lines in the order.
type OrderReviewRequest struct {
	Comments map[int64]string `json:"comments"`
}
