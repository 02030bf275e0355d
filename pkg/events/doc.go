// Package events defines the session events published while the
// controller talks to the sensor.
package events

// Events are encoded as protobuf messages so monitors written in
// other languages can decode them with the schema below:
//
//	message Event {
//	  string kind      = 1;
//	  string state     = 2;
//	  string line      = 3;
//	  string command   = 4;
//	  string reply     = 5;
//	  string source    = 6;
//	  int64  timestamp = 7;
//	}
