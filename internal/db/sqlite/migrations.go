package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS cached_search_result (
    combination_id   TEXT    NOT NULL,
    locale           TEXT    NOT NULL,
    search_hash      TEXT    NOT NULL,
    search_query     TEXT    NOT NULL,
    result_data      BLOB    NOT NULL,
    last_search_time INTEGER NOT NULL,
    PRIMARY KEY (combination_id, locale, search_hash)
);

CREATE INDEX IF NOT EXISTS idx_cached_search_result_time
    ON cached_search_result(last_search_time);

CREATE TABLE IF NOT EXISTS catalog_item (
    combination_id TEXT NOT NULL,
    id             TEXT NOT NULL,
    type           TEXT NOT NULL,
    name           TEXT NOT NULL,
    PRIMARY KEY (combination_id, id),
    UNIQUE (combination_id, type, name)
);

CREATE TABLE IF NOT EXISTS catalog_recipe (
    combination_id TEXT NOT NULL,
    id             TEXT NOT NULL,
    name           TEXT NOT NULL,
    mode           TEXT NOT NULL CHECK (mode IN ('normal', 'expensive')),
    PRIMARY KEY (combination_id, id),
    UNIQUE (combination_id, name, mode)
);

CREATE TABLE IF NOT EXISTS catalog_recipe_product (
    combination_id TEXT NOT NULL,
    recipe_id      TEXT NOT NULL,
    item_id        TEXT NOT NULL,
    PRIMARY KEY (combination_id, recipe_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_catalog_recipe_product_item
    ON catalog_recipe_product(combination_id, item_id);

CREATE TABLE IF NOT EXISTS catalog_translation (
    combination_id TEXT NOT NULL,
    locale         TEXT NOT NULL,
    type           TEXT NOT NULL,
    name           TEXT NOT NULL,
    value          TEXT NOT NULL,
    PRIMARY KEY (combination_id, locale, type, name)
);
`
