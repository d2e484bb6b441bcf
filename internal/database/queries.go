package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (customer_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	UpdateOrderSQL = `
		UPDATE orders SET customer_name = $1, status = $2, updated_at = $3
		WHERE id = $4`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	GetAllOrdersSQL = `
		SELECT id, customer_name, status, created_at, updated_at
		FROM orders
		ORDER BY id DESC`

	GetOrderByIDSQL = `
		SELECT id, customer_name, status, created_at, updated_at
		FROM orders WHERE id = $1`

	GetOrderItemsSQL = `
		SELECT id, order_id, item_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC`

	DeleteOrderItemsSQL = `
		DELETE FROM order_items WHERE order_id = $1`

	DeleteOrderSQL = `
		DELETE FROM orders WHERE id = $1`

	CountOrdersReferencingMenuSQL = `
		SELECT COUNT(DISTINCT oi.order_id)
		FROM order_items oi
		JOIN menu_items mi ON mi.item_id = oi.item_id
		WHERE mi.menu_id = $1`
)

// Menu queries
const (
	InsertMenuSQL = `
		INSERT INTO menus (name, description, logo_filename, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	UpdateMenuSQL = `
		UPDATE menus SET name = $1, description = $2, logo_filename = $3, active = $4, updated_at = $5
		WHERE id = $6`

	GetAllMenusSQL = `
		SELECT id, name, description, logo_filename, active, created_at, updated_at
		FROM menus
		ORDER BY id DESC`

	GetMenuByIDSQL = `
		SELECT id, name, description, logo_filename, active, created_at, updated_at
		FROM menus WHERE id = $1`

	GetMenuByNameSQL = `
		SELECT id, name, description, logo_filename, active, created_at, updated_at
		FROM menus WHERE LOWER(name) = LOWER($1)`

	DeleteMenuSQL = `
		DELETE FROM menus WHERE id = $1`

	DeleteMenuAssociationsSQL = `
		DELETE FROM menu_items WHERE menu_id = $1`

	AttachItemSQL = `
		INSERT INTO menu_items (menu_id, item_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	DetachItemSQL = `
		DELETE FROM menu_items WHERE menu_id = $1 AND item_id = $2`

	GetMenuItemIDsSQL = `
		SELECT item_id FROM menu_items WHERE menu_id = $1 ORDER BY item_id ASC`
)

// Item queries
const (
	InsertItemSQL = `
		INSERT INTO items (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING id`

	UpdateItemSQL = `
		UPDATE items SET name = $1, description = $2, price = $3
		WHERE id = $4`

	GetAllItemsSQL = `
		SELECT id, name, description, price
		FROM items
		ORDER BY id DESC`

	GetItemByIDSQL = `
		SELECT id, name, description, price
		FROM items WHERE id = $1`

	GetItemsByMenuSQL = `
		SELECT i.id, i.name, i.description, i.price
		FROM items i
		JOIN menu_items mi ON mi.item_id = i.id
		WHERE mi.menu_id = $1
		ORDER BY i.id ASC`

	DeleteItemSQL = `
		DELETE FROM items WHERE id = $1`

	DeleteItemAssociationsSQL = `
		DELETE FROM menu_items WHERE item_id = $1`

	CountItemsByIDSQL = `
		SELECT COUNT(*) FROM items WHERE id = $1`
)

// Setting queries
const (
	UpsertSettingSQL = `
		INSERT INTO settings (key, value, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, type = EXCLUDED.type`

	GetSettingByKeySQL = `
		SELECT key, value, type FROM settings WHERE key = $1`

	GetAllSettingsSQL = `
		SELECT key, value, type FROM settings ORDER BY key ASC`

	DeleteSettingSQL = `
		DELETE FROM settings WHERE key = $1`
)
