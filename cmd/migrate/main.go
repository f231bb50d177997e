package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"canteen-web/internal/env"
	"canteen-web/internal/store"
)

// migrate applies the session store schema without starting the server
func main() {
	_ = godotenv.Load()
	path := flag.String("path", env.GetEnv(env.EnvSQLitePath, env.DefaultSQLitePath), "path to the session database file")
	flag.Parse()

	db, err := store.OpenSQLite(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Println("Session store migration complete for:", *path)
}

/*
This project is the web client of the Smart Canteen ordering service. It renders the menu, cart, kitchen and admin pages on top of the canteen backend API.
Smart Canteen Web Copyright (C) 2025 Smart Canteen contributors
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
