package fulfillment_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria compartido por los repos fake. Sin transacciones reales:
// el fakeTxRunner ejecuta el closure directamente contra el mismo almacén.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu sync.Mutex

	tenants      map[string]*entity.Tenant
	customers    map[string]*entity.Customer
	vehicles     map[string]*entity.Vehicle
	services     map[string]*entity.Service
	consumption  map[string][]entity.ServiceConsumption // serviceID -> receta
	products     map[string]*entity.Product
	orders       map[string]*entity.ServiceOrder
	orderItems   map[string][]entity.OrderItem // orderID -> items
	appointments map[string]*entity.Appointment
	apptItems    map[string][]entity.AppointmentItem // appointmentID -> items
	counters     map[string]int64                    // tenantID -> last_code
}

func newMemStore() *memStore {
	return &memStore{
		tenants:      make(map[string]*entity.Tenant),
		customers:    make(map[string]*entity.Customer),
		vehicles:     make(map[string]*entity.Vehicle),
		services:     make(map[string]*entity.Service),
		consumption:  make(map[string][]entity.ServiceConsumption),
		products:     make(map[string]*entity.Product),
		orders:       make(map[string]*entity.ServiceOrder),
		orderItems:   make(map[string][]entity.OrderItem),
		appointments: make(map[string]*entity.Appointment),
		apptItems:    make(map[string][]entity.AppointmentItem),
		counters:     make(map[string]int64),
	}
}

// ── TxRunner fake ─────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	appointmentRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	serviceRepo repository.ServiceRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(
		&fakeOrderRepo{s: r.store},
		&fakeAppointmentRepo{s: r.store},
		&fakeCustomerRepo{s: r.store},
		&fakeVehicleRepo{s: r.store},
		&fakeServiceRepo{s: r.store},
		&fakeProductRepo{s: r.store},
	)
}

// ── Dispatcher fake ───────────────────────────────────────────────────────────

type sentMsg struct {
	phone    string
	template fulfillment.NotificationTemplate
	vars     map[string]string
}

type fakeDispatcher struct {
	mu       sync.Mutex
	sent     []sentMsg
	failWith error
}

func (d *fakeDispatcher) Send(_ context.Context, toPhone string, template fulfillment.NotificationTemplate, vars map[string]string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failWith != nil {
		return d.failWith
	}
	d.sent = append(d.sent, sentMsg{phone: toPhone, template: template, vars: vars})
	return nil
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

// ── Repos fake ────────────────────────────────────────────────────────────────

type fakeTenantRepo struct{ s *memStore }

func (r *fakeTenantRepo) Create(t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tenants[t.ID] = t
	return nil
}

func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.tenants[id], nil
}

func (r *fakeTenantRepo) GetBySlug(slug string) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) ListActive() ([]*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Tenant
	for _, t := range r.s.tenants {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) Update(t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tenants[t.ID] = t
	return nil
}

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(tenantID, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.customers[id]
	if c == nil || c.TenantID != tenantID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) FindByEmailOrPhone(tenantID, email, phone string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.TenantID != tenantID {
			continue
		}
		if (email != "" && c.Email == email) || c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.TenantID == tenantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, id)
	return nil
}

func (r *fakeCustomerRepo) AddPoints(tenantID, id string, delta int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.customers[id]
	if c == nil || c.TenantID != tenantID {
		return 0, domain.ErrNotFound
	}
	c.LoyaltyPoints += delta
	return c.LoyaltyPoints, nil
}

func (r *fakeCustomerRepo) RedeemPoints(tenantID, id string, n int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.customers[id]
	if c == nil || c.TenantID != tenantID {
		return 0, domain.ErrNotFound
	}
	if c.LoyaltyPoints < n {
		return 0, domain.ErrInsufficientPoints
	}
	c.LoyaltyPoints -= n
	return c.LoyaltyPoints, nil
}

type fakeVehicleRepo struct{ s *memStore }

func (r *fakeVehicleRepo) Create(v *entity.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	r.s.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(tenantID, id string) (*entity.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v := r.s.vehicles[id]
	if v == nil || v.TenantID != tenantID {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByPlate(tenantID, plate string) (*entity.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.vehicles {
		if v.TenantID == tenantID && v.Plate == plate {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVehicleRepo) ListByCustomer(tenantID, customerID string) ([]*entity.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Vehicle
	for _, v := range r.s.vehicles {
		if v.TenantID == tenantID && v.CustomerID == customerID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) Update(v *entity.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	r.s.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) Delete(tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.vehicles, id)
	return nil
}

type fakeServiceRepo struct{ s *memStore }

func (r *fakeServiceRepo) Create(svc *entity.Service, consumption []entity.ServiceConsumption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *svc
	r.s.services[svc.ID] = &cp
	r.s.consumption[svc.ID] = consumption
	return nil
}

func (r *fakeServiceRepo) GetByID(tenantID, id string) (*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc := r.s.services[id]
	if svc == nil || svc.TenantID != tenantID {
		return nil, nil
	}
	cp := *svc
	return &cp, nil
}

func (r *fakeServiceRepo) GetByIDs(tenantID string, ids []string) ([]*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Service
	for _, id := range ids {
		if svc := r.s.services[id]; svc != nil && svc.TenantID == tenantID {
			cp := *svc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Service
	for _, svc := range r.s.services {
		if svc.TenantID == tenantID {
			cp := *svc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(svc *entity.Service, consumption []entity.ServiceConsumption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *svc
	r.s.services[svc.ID] = &cp
	if consumption != nil {
		r.s.consumption[svc.ID] = consumption
	}
	return nil
}

func (r *fakeServiceRepo) Delete(tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.services, id)
	delete(r.s.consumption, id)
	return nil
}

func (r *fakeServiceRepo) ConsumptionByService(serviceID string) ([]entity.ServiceConsumption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.consumption[serviceID], nil
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(tenantID, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	if p == nil || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) AdjustQuantity(tenantID, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	if p == nil || p.TenantID != tenantID {
		return decimal.Zero, domain.ErrNotFound
	}
	p.Quantity = p.Quantity.Add(delta)
	return p.Quantity, nil
}

func (r *fakeProductRepo) ListBelowReorderPoint(tenantID string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID == tenantID && p.Quantity.LessThanOrEqual(p.ReorderPoint) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(o *entity.ServiceOrder, items []entity.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	r.s.orders[o.ID] = &cp
	r.s.orderItems[o.ID] = items
	return nil
}

func (r *fakeOrderRepo) GetByID(tenantID, id string) (*entity.ServiceOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o := r.s.orders[id]
	if o == nil || o.TenantID != tenantID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetForUpdate(tenantID, id string) (*entity.ServiceOrder, error) {
	return r.GetByID(tenantID, id)
}

func (r *fakeOrderRepo) GetByAppointment(tenantID, appointmentID string) (*entity.ServiceOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.TenantID == tenantID && o.LinkedAppointmentID == appointmentID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListByTenant(tenantID string, status entity.OrderStatus, limit, offset int) ([]*entity.ServiceOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ServiceOrder
	for _, o := range r.s.orders {
		if o.TenantID != tenantID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(o *entity.ServiceOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) ItemsByOrder(orderID string) ([]entity.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.orderItems[orderID], nil
}

func (r *fakeOrderRepo) NextSequentialCode(tenantID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.counters[tenantID]++
	return r.s.counters[tenantID], nil
}

type fakeAppointmentRepo struct{ s *memStore }

func (r *fakeAppointmentRepo) Create(a *entity.Appointment, items []entity.AppointmentItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	r.s.appointments[a.ID] = &cp
	r.s.apptItems[a.ID] = items
	return nil
}

func (r *fakeAppointmentRepo) GetByID(tenantID, id string) (*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := r.s.appointments[id]
	if a == nil || a.TenantID != tenantID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) GetForUpdate(tenantID, id string) (*entity.Appointment, error) {
	return r.GetByID(tenantID, id)
}

func (r *fakeAppointmentRepo) ListByTenant(tenantID string, status entity.AppointmentStatus, limit, offset int) ([]*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Appointment
	for _, a := range r.s.appointments {
		if a.TenantID != tenantID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(tenantID, id string, status entity.AppointmentStatus, cancelReason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := r.s.appointments[id]
	if a == nil || a.TenantID != tenantID {
		return domain.ErrNotFound
	}
	a.Status = status
	a.CancelReason = cancelReason
	return nil
}

func (r *fakeAppointmentRepo) SetLinkedOrder(tenantID, id, orderID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := r.s.appointments[id]
	if a == nil || a.TenantID != tenantID {
		return domain.ErrNotFound
	}
	a.LinkedOrderID = orderID
	return nil
}

func (r *fakeAppointmentRepo) ItemsByAppointment(appointmentID string) ([]entity.AppointmentItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.apptItems[appointmentID], nil
}
