package dto

// PagedResult sobre de respuesta paginada.
type PagedResult[T any] struct {
	List         []T    `json:"list"`
	TotalResults int    `json:"totalResults"`
	PageIndex    int    `json:"pageIndex"`
	PageSize     int    `json:"pageSize"`
	Query        string `json:"query"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
