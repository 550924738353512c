package home

const title = `█▄▀ █ █▀▄   █   █▀▀ ▄▀█ █▀█ █▄ █
█ █ █ █▄▀   █▄▄ ██▄ █▀█ █▀▄ █ ▀█`
