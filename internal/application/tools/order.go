package tools

import (
	"context"
	"fmt"

	"shopware-admin-mcp/internal/infrastructure/adminapi"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// orderStatuses is the state vocabulary orders can be filtered by.
var orderStatuses = []string{"open", "in_progress", "completed", "cancelled"}

// orderTransitions is the fixed transition vocabulary of the order state
// machine endpoint.
var orderTransitions = []string{"cancel", "reopen", "in_progress", "completed"}

func registerOrderTools(s *server.MCPServer, resolve ClientResolver, logger zerolog.Logger) {
	s.AddTool(mcp.NewTool("order_list",
		mcp.WithDescription("List orders, newest first, optionally filtered by status"),
		mcp.WithNumber("page",
			mcp.DefaultNumber(1),
			mcp.Min(1),
			mcp.Description("1-indexed result page"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by order status"),
			mcp.Enum(orderStatuses...),
		),
	), handle("order_list", resolve, logger, orderList))

	s.AddTool(mcp.NewTool("order_detail",
		mcp.WithDescription("Get a single order with customer, addresses, delivery and line items"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the order to retrieve")),
	), handle("order_detail", resolve, logger, orderDetail))

	s.AddTool(mcp.NewTool("order_update",
		mcp.WithDescription("Transition an order to a new state"),
		mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the order to update")),
		mcp.WithString("status",
			mcp.Description("The new status of the order"),
			mcp.Enum(orderTransitions...),
		),
	), handle("order_update", resolve, logger, orderUpdate))
}

func orderList(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	page := int(numberArg(args, "page", 1))
	if page < 1 {
		return mcp.NewToolResultError("page must be at least 1"), nil
	}

	orderRepo := adminapi.NewRepository[map[string]any](client, "order")

	criteria := adminapi.NewCriteria()
	criteria.AddSorting(adminapi.Sort("orderDateTime", "DESC"))
	criteria.SetLimit(20)
	criteria.SetPage(page)
	criteria.AddFields(
		"id",
		"orderNumber",
		"orderDateTime",
		"amountTotal",
		"orderCustomer.firstName",
		"orderCustomer.lastName",
		"orderCustomer.email",
		"primaryOrderDelivery.stateMachineState.technicalName",
		"primaryOrderTransaction.stateMachineState.technicalName",
		"stateMachineState.technicalName",
		"currency.name",
	)

	if status, ok := stringArg(args, "status"); ok {
		if !contains(orderStatuses, status) {
			return mcp.NewToolResultError(fmt.Sprintf("status must be one of %v", orderStatuses)), nil
		}
		criteria.AddFilter(adminapi.Equals("stateMachineState.technicalName", status))
	}

	orders, err := orderRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	return serializedResult(map[string]any{"total": orders.Total, "data": orders.Data})
}

func orderDetail(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	orderRepo := adminapi.NewRepository[map[string]any](client, "order")

	criteria := adminapi.NewCriteria(id)
	criteria.AddFields(
		"id",
		"orderNumber",
		"orderDateTime",
		"amountTotal",
		"orderCustomer.firstName",
		"orderCustomer.lastName",
		"orderCustomer.email",
		"primaryOrderDelivery.stateMachineState.technicalName",
		"primaryOrderTransaction.stateMachineState.technicalName",
		"stateMachineState.technicalName",
		"billingAddress.firstName",
		"billingAddress.lastName",
		"billingAddress.company",
		"billingAddress.street",
		"billingAddress.city",
		"billingAddress.zipcode",
		"billingAddress.country.name",
		"primaryOrderDelivery.trackingCodes",
		"primaryOrderDelivery.shippingOrderAddress.firstName",
		"primaryOrderDelivery.shippingOrderAddress.lastName",
		"primaryOrderDelivery.shippingOrderAddress.company",
		"primaryOrderDelivery.shippingOrderAddress.street",
		"primaryOrderDelivery.shippingOrderAddress.city",
		"primaryOrderDelivery.shippingOrderAddress.zipcode",
		"primaryOrderDelivery.shippingOrderAddress.country.name",
		"currency.name",
		"lineItems.referencedId",
		"lineItems.label",
		"lineItems.quantity",
		"lineItems.position",
		"lineItems.unitPrice",
		"lineItems.totalPrice",
	)

	orders, err := orderRepo.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if orders.Total == 0 {
		return mcp.NewToolResultText("Order not found"), nil
	}

	return serializedResult(map[string]any{"total": orders.Total, "data": orders.Data})
}

func orderUpdate(ctx context.Context, client *adminapi.Client, args map[string]any) (*mcp.CallToolResult, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if status, ok := stringArg(args, "status"); ok {
		if !contains(orderTransitions, status) {
			return mcp.NewToolResultError(fmt.Sprintf("status must be one of %v", orderTransitions)), nil
		}
		if _, err := client.Post(ctx, fmt.Sprintf("_action/order/%s/state/%s", id, status), nil); err != nil {
			return serializeError("Error updating order: ", err), nil
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Order %s updated successfully.", id)), nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
