package client

import (
	"context"
	"strconv"
)

// Data endpoints. The %s verb receives the section subscription identifier.
const (
	weeklyPathFormat         = "/deli/section_subscription/%s/consumptions/weekly"
	monthlyPathFormat        = "/deli/section_subscription/%s/consumptions/monthly"
	lastKnownPathFormat      = "/deli/section_subscriptions/%s/meter_indexes/last"
	deliveryPointsPathFormat = "/deli/section_subscriptions/%s/delivery_points"
)

// GetWeeklyData returns the consumption of the week containing the given day.
func (c *Client) GetWeeklyData(ctx context.Context, year, month, day int) (map[string]any, error) {
	return c.getJSON(ctx, "weekly", weeklyPathFormat, map[string]string{
		"year":  strconv.Itoa(year),
		"month": strconv.Itoa(month),
		"day":   strconv.Itoa(day),
	})
}

// GetMonthlyData returns the consumption of the given month.
func (c *Client) GetMonthlyData(ctx context.Context, year, month int) (map[string]any, error) {
	return c.getJSON(ctx, "monthly", monthlyPathFormat, map[string]string{
		"year":  strconv.Itoa(year),
		"month": strconv.Itoa(month),
	})
}

// GetLastKnownData returns the last meter index known to SAUR.
func (c *Client) GetLastKnownData(ctx context.Context) (map[string]any, error) {
	return c.getJSON(ctx, "last_known", lastKnownPathFormat, nil)
}

// GetDeliveryPointsData returns the delivery points (meter installations) of
// the section subscription.
func (c *Client) GetDeliveryPointsData(ctx context.Context) (map[string]any, error) {
	return c.getJSON(ctx, "delivery_points", deliveryPointsPathFormat, nil)
}
