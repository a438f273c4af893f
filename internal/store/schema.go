package store

// sqliteSchema mirrors the production tables the lookups read. It exists for
// the development database and tests only; the production schema is owned
// elsewhere.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS clients (
	id   INTEGER PRIMARY KEY,
	name TEXT,
	pan  TEXT
);

CREATE TABLE IF NOT EXISTS persons (
	id        INTEGER PRIMARY KEY,
	client_id INTEGER NOT NULL REFERENCES clients(id)
);

CREATE TABLE IF NOT EXISTS mobiles (
	id    INTEGER PRIMARY KEY,
	phone TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS person_mobiles (
	person_id INTEGER NOT NULL REFERENCES persons(id),
	mobile_id INTEGER NOT NULL REFERENCES mobiles(id),
	PRIMARY KEY (person_id, mobile_id)
);

CREATE TABLE IF NOT EXISTS loans (
	id                     INTEGER PRIMARY KEY,
	client_id              INTEGER NOT NULL REFERENCES clients(id),
	loan_number            TEXT,
	approved_amount        REAL,
	disbursed_amount       REAL,
	approved_on            DATETIME,
	disbursed_on           DATETIME,
	interest_rate          REAL,
	status                 INTEGER,
	creation_time          DATETIME,
	tenure                 INTEGER,
	emi_amount             REAL,
	installment_amount     REAL,
	outstanding_amount     REAL,
	maturity_date          DATETIME,
	first_installment_date DATETIME,
	security_type          TEXT,
	is_active              INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS cams_loan_scrips (
	id                    INTEGER PRIMARY KEY,
	scrip_id              TEXT,
	loan_id               INTEGER NOT NULL,
	account_id            TEXT,
	attached_quantity     REAL,
	total_quantity        REAL,
	pledged_quantity      REAL,
	is_pledge             INTEGER,
	pledge_time_value     REAL,
	lien_mark_no          TEXT,
	is_active             INTEGER,
	amc_code              TEXT,
	folio_number          TEXT,
	scheme_code           TEXT,
	pan_number            TEXT,
	lien_reference_number TEXT,
	current_quantity      REAL,
	lien_ref_no           TEXT,
	nsdl_status           TEXT,
	kfin_status           TEXT,
	invocation_quantity   REAL,
	rta_name              TEXT,
	isin                  TEXT,
	mfcentral_status      TEXT,
	depository_code       TEXT,
	pledge_time_ltv       REAL,
	pledge_mode           TEXT,
	created_at            DATETIME,
	updated_at            DATETIME
);

CREATE TABLE IF NOT EXISTS loan_scrips (
	id                    INTEGER PRIMARY KEY,
	scrip_id              TEXT,
	loan_id               INTEGER NOT NULL,
	account_id            TEXT,
	demat_account_id      TEXT,
	attached_quantity     REAL,
	total_quantity        REAL,
	pledged_quantity      REAL,
	is_pledge             INTEGER,
	pledge_time_value     REAL,
	lien_mark_no          TEXT,
	is_active             INTEGER,
	amc_code              TEXT,
	scheme_code           TEXT,
	lien_reference_number TEXT,
	current_quantity      REAL,
	lien_ref_no           TEXT,
	nsdl_status           TEXT,
	depository_code       TEXT,
	pledge_time_ltv       REAL,
	pledge_mode           TEXT,
	created_at            DATETIME,
	updated_at            DATETIME
);

CREATE TABLE IF NOT EXISTS provider_requests (
	id            INTEGER PRIMARY KEY,
	entity_id     TEXT NOT NULL,
	entity_type   TEXT,
	request_type  TEXT,
	provider      TEXT,
	state         TEXT,
	request_time  DATETIME,
	response_time DATETIME,
	created_at    DATETIME,
	updated_at    DATETIME
);

CREATE TABLE IF NOT EXISTS provider_logs (
	id          INTEGER PRIMARY KEY,
	entity_id   TEXT NOT NULL,
	entity_type TEXT,
	provider    TEXT,
	type        TEXT,
	status      TEXT,
	payload     TEXT,
	http_status TEXT,
	response    TEXT,
	created_at  DATETIME,
	modified_at DATETIME
);

CREATE TABLE IF NOT EXISTS eligibility_leads (
	id            INTEGER PRIMARY KEY,
	mobile_number TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS eligibility_securities (
	id              INTEGER PRIMARY KEY,
	request_id      TEXT NOT NULL,
	security_type   TEXT,
	security_value  REAL,
	eligible_amount REAL,
	loan_to_value   REAL,
	remarks         TEXT,
	created_at      DATETIME,
	updated_at      DATETIME
);

CREATE TABLE IF NOT EXISTS person_locations (
	id            INTEGER PRIMARY KEY,
	person_id     INTEGER NOT NULL REFERENCES persons(id),
	address_line1 TEXT,
	location_type TEXT
);

CREATE TABLE IF NOT EXISTS person_emails (
	id        INTEGER PRIMARY KEY,
	person_id INTEGER NOT NULL REFERENCES persons(id),
	email_id  TEXT
);

CREATE TABLE IF NOT EXISTS banker_checks (
	id       INTEGER PRIMARY KEY,
	loan_id  INTEGER NOT NULL REFERENCES loans(id),
	severity TEXT
);

CREATE INDEX IF NOT EXISTS idx_loans_client_id ON loans(client_id);
CREATE INDEX IF NOT EXISTS idx_clients_pan ON clients(pan);
CREATE INDEX IF NOT EXISTS idx_mobiles_phone ON mobiles(phone);
CREATE INDEX IF NOT EXISTS idx_cams_loan_scrips_loan_id ON cams_loan_scrips(loan_id);
CREATE INDEX IF NOT EXISTS idx_loan_scrips_loan_id ON loan_scrips(loan_id);
CREATE INDEX IF NOT EXISTS idx_provider_requests_entity_id ON provider_requests(entity_id);
CREATE INDEX IF NOT EXISTS idx_provider_logs_entity_id ON provider_logs(entity_id);
CREATE INDEX IF NOT EXISTS idx_eligibility_leads_mobile ON eligibility_leads(mobile_number);
CREATE INDEX IF NOT EXISTS idx_eligibility_securities_request ON eligibility_securities(request_id);
CREATE INDEX IF NOT EXISTS idx_banker_checks_loan_id ON banker_checks(loan_id);
`
