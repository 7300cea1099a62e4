package models

import (
	"encoding/json"
	"time"
)

type CommandType string

const (
	CmdRun             CommandType = "run"
	CmdLaunch          CommandType = "launch"
	CmdOpen            CommandType = "open"
	CmdOpenFree        CommandType = "open_free"
	CmdGetURL          CommandType = "get_url"
	CmdScrape          CommandType = "scrape"
	CmdClickComplex    CommandType = "click_complex"
	CmdClose           CommandType = "close"
	CmdRunStatus       CommandType = "run_status"
	CmdClearCooldown   CommandType = "clear_cooldown"
	CmdReset           CommandType = "reset"
	CmdComplexes       CommandType = "complexes"
	CmdComplexListings CommandType = "complex_listings"
)

type Command struct {
	ID          int64           `json:"id" db:"id"`
	Command     CommandType     `json:"command" db:"command"`
	Params      json.RawMessage `json:"params" db:"params"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt *time.Time      `json:"processed_at" db:"processed_at"`
	Result      json.RawMessage `json:"result,omitempty" db:"result"`
}

type CommandParams struct {
	Region        string   `json:"region,omitempty"`
	RegionCode    string   `json:"regionCode,omitempty"`
	Regions       []string `json:"regions,omitempty"`
	PropertyType  string   `json:"propertyType,omitempty"`
	TradeType     string   `json:"tradeType,omitempty"`
	PropertyTypes []string `json:"propertyTypes,omitempty"`
	TradeTypes    []string `json:"tradeTypes,omitempty"`
	Strategy      string   `json:"strategy,omitempty"`
	ComplexName   string   `json:"complexName,omitempty"`
	ComplexNo     string   `json:"complexNo,omitempty"`
	Visible       bool     `json:"visible,omitempty"`
	RunID         string   `json:"runId,omitempty"`
}
