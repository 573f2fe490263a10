package api

import (
	"context"
	"net/http"
	"strconv"
)

// FetchPurchaselog returns one page of the signed-in user's purchase history.
func (c *Client) FetchPurchaselog(ctx context.Context, page int) (PurchaselogPage, error) {
	var out PurchaselogPage
	req := c.http.R().SetQueryParam("page", strconv.Itoa(page))
	if err := c.do(ctx, "fetch purchaselog", http.MethodGet, "/purchaselog", req, &out, false); err != nil {
		return PurchaselogPage{}, err
	}
	if out.Purchaselog == nil {
		out.Purchaselog = []Purchaselog{}
	}
	return out, nil
}
