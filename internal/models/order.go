package models

// Order is the client-side view of an Orders insert; orderNum and orderTime are assigned by
// the database.
type Order struct {
	CustomerID   int
	StoreID      int
	ProductName  string
	UnitsOrdered int
}

type SupplyRequest struct {
	ManagerID      int
	WarehouseID    int
	StoreID        int
	ProductName    string
	UnitsRequested int
}
