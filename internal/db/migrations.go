package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		full_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		mobile VARCHAR(32),
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		failed_login_attempts INT NOT NULL DEFAULT 0,
		lock_until TIMESTAMPTZ,
		is_suspended BOOLEAN NOT NULL DEFAULT FALSE,
		profile_picture TEXT,
		bio TEXT,
		farm_name VARCHAR(255),
		farm_street VARCHAR(255),
		farm_city VARCHAR(128),
		farm_state VARCHAR(128),
		farm_zip VARCHAR(32),
		farm_country VARCHAR(128),
		geo_lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		geo_lng DOUBLE PRECISION NOT NULL DEFAULT 0,
		crops_grown JSONB,
		business_name VARCHAR(255),
		bank_account_name VARCHAR(255),
		bank_account_number VARCHAR(64),
		bank_bank_name VARCHAR(255),
		bank_branch VARCHAR(255),
		bank_ifsc_code VARCHAR(32),
		company_name VARCHAR(255),
		business_type VARCHAR(128),
		company_address TEXT,
		gstin VARCHAR(32),
		cin VARCHAR(32),
		contact_person_name VARCHAR(255),
		contact_person_designation VARCHAR(128),
		produce_required JSONB,
		delivery_address TEXT,
		billing_address TEXT,
		documents JSONB,
		photos JSONB,
		rating NUMERIC(3,2) NOT NULL DEFAULT 3.5,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (LOWER(email));`,
	`CREATE INDEX IF NOT EXISTS idx_users_role ON users (role);`,
	`CREATE TABLE IF NOT EXISTS rfqs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		rfq_number VARCHAR(64) NOT NULL,
		buyer_id UUID NOT NULL REFERENCES users(id),
		product VARCHAR(255) NOT NULL,
		category VARCHAR(64) NOT NULL,
		quantity NUMERIC(18,3) NOT NULL,
		unit VARCHAR(32) NOT NULL,
		delivery_deadline TIMESTAMPTZ NOT NULL,
		attachments JSONB,
		type VARCHAR(16) NOT NULL DEFAULT 'public',
		invited_farmers JSONB,
		status VARCHAR(16) NOT NULL DEFAULT 'open',
		additional_notes TEXT,
		region VARCHAR(64),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_rfqs_number ON rfqs (rfq_number);`,
	`CREATE INDEX IF NOT EXISTS idx_rfqs_buyer_id ON rfqs (buyer_id);`,
	`CREATE INDEX IF NOT EXISTS idx_rfqs_status ON rfqs (status);`,
	`CREATE INDEX IF NOT EXISTS idx_rfqs_region ON rfqs (region);`,
	`CREATE TABLE IF NOT EXISTS bids (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		bid_number VARCHAR(64) NOT NULL,
		rfq_id UUID NOT NULL REFERENCES rfqs(id),
		farmer_id UUID NOT NULL REFERENCES users(id),
		price_per_unit NUMERIC(18,4) NOT NULL,
		window_start TIMESTAMPTZ NOT NULL,
		window_end TIMESTAMPTZ NOT NULL,
		transport_method VARCHAR(64) NOT NULL,
		remarks TEXT,
		score NUMERIC(10,6) NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'submitted',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bids_number ON bids (bid_number);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_bids_rfq_farmer ON bids (rfq_id, farmer_id);`,
	`CREATE INDEX IF NOT EXISTS idx_bids_farmer_id ON bids (farmer_id);`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		farmer_id UUID NOT NULL REFERENCES users(id),
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		category VARCHAR(64) NOT NULL,
		subcategory VARCHAR(64),
		origin VARCHAR(128),
		price NUMERIC(18,2) NOT NULL,
		currency VARCHAR(8) NOT NULL DEFAULT 'INR',
		discount NUMERIC(5,2) NOT NULL DEFAULT 0,
		unit VARCHAR(32) NOT NULL,
		quantity NUMERIC(18,3) NOT NULL,
		moq NUMERIC(18,3) NOT NULL DEFAULT 1,
		harvest_date TIMESTAMPTZ NOT NULL,
		shelf_life VARCHAR(64),
		grade VARCHAR(32) NOT NULL,
		packaging VARCHAR(32) NOT NULL,
		sku VARCHAR(64),
		images JSONB,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		published BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_products_farmer_id ON products (farmer_id);`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id),
		product_id UUID NOT NULL REFERENCES products(id),
		quantity NUMERIC(18,3) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_cart_user_product ON cart_items (user_id, product_id);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id),
		ship_street VARCHAR(255) NOT NULL,
		ship_city VARCHAR(128) NOT NULL,
		ship_state VARCHAR(128) NOT NULL,
		ship_zip VARCHAR(32) NOT NULL,
		ship_country VARCHAR(128) NOT NULL,
		payment_method VARCHAR(32) NOT NULL DEFAULT 'COD',
		payment_status VARCHAR(16) NOT NULL DEFAULT 'Pending',
		total_price NUMERIC(18,2) NOT NULL,
		order_status VARCHAR(16) NOT NULL DEFAULT 'Pending',
		delivered_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id);`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		farmer_id UUID NOT NULL REFERENCES users(id),
		title VARCHAR(255) NOT NULL,
		quantity NUMERIC(18,3) NOT NULL,
		price NUMERIC(18,2) NOT NULL,
		category VARCHAR(64) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		invoice_number VARCHAR(64) NOT NULL,
		user_id UUID NOT NULL REFERENCES users(id),
		farmer_id UUID NOT NULL REFERENCES users(id),
		order_id UUID NOT NULL REFERENCES orders(id),
		amount NUMERIC(18,2) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'Pending',
		due_date TIMESTAMPTZ NOT NULL,
		paid_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_invoices_number ON invoices (invoice_number);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_user_id ON invoices (user_id);`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		participant_a UUID NOT NULL REFERENCES users(id),
		participant_b UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_conversations_pair ON conversations (participant_a, participant_b);`,
	`CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		conversation_id UUID NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		sender_id UUID NOT NULL REFERENCES users(id),
		recipient_id UUID NOT NULL REFERENCES users(id),
		body TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages (conversation_id);`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		entity_type VARCHAR(16) NOT NULL,
		entity_id UUID NOT NULL,
		event_type VARCHAR(64) NOT NULL,
		user_id UUID REFERENCES users(id),
		details JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log (entity_type, entity_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
