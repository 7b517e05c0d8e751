package handlers

import (
	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/service/orders"
	"dispatch-platform-go/internal/service/partners"
)

func (r createOrderRequest) toInput() orders.CreateInput {
	items := make([]domain.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.Item{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return orders.CreateInput{
		Items:         items,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Address:       r.Address,
		PrepMinutes:   r.PrepMinutes,
	}
}

func (r registerPartnerRequest) toInput() partners.RegisterInput {
	return partners.RegisterInput{Name: r.Name, Phone: r.Phone}
}

func orderToResponse(o domain.Order) orderDTO {
	items := make([]itemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemDTO{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return orderDTO{
		ID:            o.ID,
		Status:        string(o.Status),
		PartnerID:     o.PartnerID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Address:       o.Address,
		PrepMinutes:   o.PrepMinutes,
		CreatedAt:     o.CreatedAt,
		AssignedAt:    o.AssignedAt,
		PickedAt:      o.PickedAt,
		OnRouteAt:     o.OnRouteAt,
		DeliveredAt:   o.DeliveredAt,
	}
}

func ordersToResponse(list []domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, orderToResponse(o))
	}
	return out
}

func partnerToResponse(p domain.Partner) partnerDTO {
	return partnerDTO{
		ID:              p.ID,
		Name:            p.Name,
		Phone:           p.Phone,
		Available:       p.Available,
		Active:          p.Active,
		CurrentOrderID:  p.CurrentOrderID,
		CompletedOrders: p.CompletedOrders,
	}
}

func partnersToResponse(list []domain.Partner) []partnerDTO {
	out := make([]partnerDTO, 0, len(list))
	for _, p := range list {
		out = append(out, partnerToResponse(p))
	}
	return out
}
